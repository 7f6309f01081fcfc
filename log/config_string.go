// Code generated by "stringer --linecomment --type Level,Format"; adapted by
// hand since the generator tool is not part of this module's toolchain
// invocation. DO NOT regenerate without verifying the const order below still
// matches config.go.

package log

import "strconv"

func _() {
	// An "invalid array index" compiler error signals that the constant values
	// have changed. Re-verify this file against config.go if this fails.
	var x [1]struct{}
	_ = x[LevelTrace-(-8)]
	_ = x[LevelDebug-(-4)]
	_ = x[LevelInfo-0]
	_ = x[LevelWarn-4]
	_ = x[LevelError-8]
}

const _Level_name = "tracedebuginfowarnerror"

var _Level_index = [...]uint8{0, 5, 10, 14, 18, 23}

// String returns the linecomment name of the level (e.g. "trace", "info").
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return _Level_name[_Level_index[0]:_Level_index[1]]
	case LevelDebug:
		return _Level_name[_Level_index[1]:_Level_index[2]]
	case LevelInfo:
		return _Level_name[_Level_index[2]:_Level_index[3]]
	case LevelWarn:
		return _Level_name[_Level_index[3]:_Level_index[4]]
	case LevelError:
		return _Level_name[_Level_index[4]:_Level_index[5]]
	default:
		return "Level(" + strconv.Itoa(int(l)) + ")"
	}
}

func _() {
	var x [1]struct{}
	_ = x[FormatText-0]
	_ = x[FormatJSON-1]
}

const _Format_name = "textjson"

var _Format_index = [...]uint8{0, 4, 8}

// String returns the linecomment name of the format (e.g. "text", "json").
func (f Format) String() string {
	switch f {
	case FormatText:
		return _Format_name[_Format_index[0]:_Format_index[1]]
	case FormatJSON:
		return _Format_name[_Format_index[1]:_Format_index[2]]
	default:
		return "Format(" + strconv.Itoa(int(f)) + ")"
	}
}
