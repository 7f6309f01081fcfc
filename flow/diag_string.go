// Code generated by "stringer --linecomment --type DiagSource,Level"; adapted
// by hand since the generator tool is not part of this module's toolchain
// invocation. DO NOT regenerate without verifying the const order below still
// matches diag.go.

package flow

import "strconv"

func _() {
	var x [1]struct{}
	_ = x[SourceParser-0]
	_ = x[SourceWorkflow-1]
}

const _DiagSource_name = "PARSERWORKFLOW"

var _DiagSource_index = [...]uint8{0, 6, 14}

// String returns the linecomment name of the source (e.g. "PARSER").
func (s DiagSource) String() string {
	switch s {
	case SourceParser:
		return _DiagSource_name[_DiagSource_index[0]:_DiagSource_index[1]]
	case SourceWorkflow:
		return _DiagSource_name[_DiagSource_index[1]:_DiagSource_index[2]]
	default:
		return "DiagSource(" + strconv.Itoa(int(s)) + ")"
	}
}

func _() {
	var x [1]struct{}
	_ = x[LevelInfo-0]
	_ = x[LevelNote-1]
	_ = x[LevelWarning-2]
	_ = x[LevelError-3]
}

const _Level_name = "INFONOTEWARNINGERROR"

var _Level_index = [...]uint8{0, 4, 8, 15, 20}

// String returns the linecomment name of the level (e.g. "INFO").
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return _Level_name[_Level_index[0]:_Level_index[1]]
	case LevelNote:
		return _Level_name[_Level_index[1]:_Level_index[2]]
	case LevelWarning:
		return _Level_name[_Level_index[2]:_Level_index[3]]
	case LevelError:
		return _Level_name[_Level_index[3]:_Level_index[4]]
	default:
		return "Level(" + strconv.Itoa(int(l)) + ")"
	}
}
