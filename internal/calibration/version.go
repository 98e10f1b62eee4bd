package calibration

import "github.com/blang/semver"

// CompatibleSchema reports whether an override file's declared schema
// version can be applied to this build's Table: same major version. A
// parse failure is treated as incompatible rather than panicking downstream.
func CompatibleSchema(declared string) bool {
	built, err := semver.Parse(Default().SchemaVersion)
	if err != nil {
		return false
	}
	got, err := semver.Parse(declared)
	if err != nil {
		return false
	}
	return got.Major == built.Major
}
