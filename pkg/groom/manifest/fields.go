// Package manifest keeps an extension manifest in step with the package
// description it is derived from. Seven manifest fields are copied from the
// package file; when any of them differs the manifest is backed up and
// rebuilt from scratch.
package manifest

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// ErrInvalidJSON is returned when the package or manifest file is not valid JSON.
var ErrInvalidJSON = errors.New("invalid JSON document")

// Field maps a top-level manifest key to a gjson path in the package file.
type Field struct {
	Manifest string
	Package  string
}

// FieldMap lists the synchronized fields in the order they are written.
var FieldMap = []Field{
	{Manifest: "id", Package: "name"},
	{Manifest: "name", Package: "displayName"},
	{Manifest: "description", Package: "description"},
	{Manifest: "author", Package: "author.name"},
	{Manifest: "authorUrl", Package: "author.url"},
	{Manifest: "license", Package: "license"},
	{Manifest: "version", Package: "version"},
}

// FieldDiff describes one mapped field whose values disagree. Want and Got
// hold raw JSON and are empty when the value is absent.
type FieldDiff struct {
	Field       string `json:"field" yaml:"field"`
	PackagePath string `json:"package_path" yaml:"package_path"`
	Want        string `json:"want" yaml:"want"`
	Got         string `json:"got" yaml:"got"`
}

// Compare returns the mapped fields whose manifest value is not structurally
// equal to the package value. A field absent from both documents is equal.
func Compare(pkgDoc, manifestDoc []byte) []FieldDiff {
	var diffs []FieldDiff
	for _, f := range FieldMap {
		want := gjson.GetBytes(pkgDoc, f.Package)
		got := gjson.GetBytes(manifestDoc, f.Manifest)
		if equal(want, got) {
			continue
		}
		diffs = append(diffs, FieldDiff{
			Field:       f.Manifest,
			PackagePath: f.Package,
			Want:        want.Raw,
			Got:         got.Raw,
		})
	}
	return diffs
}

func equal(a, b gjson.Result) bool {
	if !a.Exists() || !b.Exists() {
		return a.Exists() == b.Exists()
	}
	if a.Type != b.Type {
		return false
	}

	switch a.Type {
	case gjson.String:
		return a.Str == b.Str
	case gjson.Number:
		return a.Num == b.Num
	case gjson.JSON:
		return bytes.Equal(pretty.Ugly([]byte(a.Raw)), pretty.Ugly([]byte(b.Raw)))
	default:
		// True, False and Null carry no payload beyond their type.
		return true
	}
}

// Build returns a fresh manifest holding only the mapped fields, in FieldMap
// order, indented with two spaces. Fields absent from the package are omitted.
func Build(pkgDoc []byte) ([]byte, error) {
	out := []byte("{}")
	for _, f := range FieldMap {
		value := gjson.GetBytes(pkgDoc, f.Package)
		if !value.Exists() {
			continue
		}

		var err error
		out, err = sjson.SetRawBytes(out, f.Manifest, []byte(value.Raw))
		if err != nil {
			return nil, fmt.Errorf("failed to set manifest field %s: %w", f.Manifest, err)
		}
	}
	return pretty.Pretty(out), nil
}

// Reconcile validates both documents and returns the manifest that should be
// stored. When the manifest already matches, diffs is empty and the original
// manifest bytes are returned unchanged.
func Reconcile(pkgDoc, manifestDoc []byte) ([]byte, []FieldDiff, error) {
	if err := validate("package", pkgDoc); err != nil {
		return nil, nil, err
	}
	if err := validate("manifest", manifestDoc); err != nil {
		return nil, nil, err
	}

	diffs := Compare(pkgDoc, manifestDoc)
	if len(diffs) == 0 {
		return manifestDoc, nil, nil
	}

	rebuilt, err := Build(pkgDoc)
	if err != nil {
		return nil, nil, err
	}
	return rebuilt, diffs, nil
}

func validate(path string, doc []byte) error {
	if !gjson.ValidBytes(doc) {
		return fmt.Errorf("%w: %s", ErrInvalidJSON, path)
	}
	return nil
}
