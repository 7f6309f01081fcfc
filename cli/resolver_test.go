package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestResolveReturnsConfigValues(t *testing.T) {
	config := "log_level: debug\nlog_format: text\n"

	loader := resolve("config")

	resolver, err := loader(strings.NewReader(config))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	mockFlag := &kong.Flag{Value: &kong.Value{Name: "log_level"}}

	val, err := resolver.Resolve(nil, nil, mockFlag)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if val != "debug" {
		t.Errorf("expected log_level=debug, got %v", val)
	}

	mockFlag2 := &kong.Flag{Value: &kong.Value{Name: "log_format"}}

	val2, err := resolver.Resolve(nil, nil, mockFlag2)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if val2 != "text" {
		t.Errorf("expected log_format=text, got %v", val2)
	}
}

func TestResolveMissingKey(t *testing.T) {
	config := "other: value\n"

	loader := resolve("config")

	resolver, err := loader(strings.NewReader(config))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	mockFlag := &kong.Flag{Value: &kong.Value{Name: "missing"}}

	val, err := resolver.Resolve(nil, nil, mockFlag)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if val != nil {
		t.Error("expected nil value for missing key")
	}
}

func TestResolveUnderscoreHyphenMapping(t *testing.T) {
	config := "log_level: debug\n"

	loader := resolve("config")

	resolver, err := loader(strings.NewReader(config))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	mockFlag := &kong.Flag{Value: &kong.Value{Name: "log-level"}}

	val, err := resolver.Resolve(nil, nil, mockFlag)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if val != "debug" {
		t.Errorf("expected log-level=debug via hyphen mapping, got %v", val)
	}
}

func TestResolveNumericStringified(t *testing.T) {
	config := "pprof_rate: 42\n"

	loader := resolve("config")

	resolver, err := loader(strings.NewReader(config))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	mockFlag := &kong.Flag{Value: &kong.Value{Name: "pprof_rate"}}

	val, err := resolver.Resolve(nil, nil, mockFlag)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if val != "42" {
		t.Errorf("expected pprof_rate=\"42\" (stringified), got %#v", val)
	}
}

func TestResolveInvalidYAMLYieldsEmptyConfig(t *testing.T) {
	loader := resolve("config")

	resolver, err := loader(strings.NewReader("not: [valid: yaml")) //nolint:goconst
	if err != nil {
		t.Fatalf("resolve should tolerate invalid YAML, got error: %v", err)
	}

	mockFlag := &kong.Flag{Value: &kong.Value{Name: "log_level"}}

	val, err := resolver.Resolve(nil, nil, mockFlag)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if val != nil {
		t.Error("expected nil value when config could not be parsed")
	}
}
