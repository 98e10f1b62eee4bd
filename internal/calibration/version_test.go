package calibration

import "testing"

func TestCompatibleSchemaSameMajor(t *testing.T) {
	built := Default().SchemaVersion
	if !CompatibleSchema(built) {
		t.Fatalf("CompatibleSchema(%q) should be true against itself", built)
	}
}

func TestCompatibleSchemaMinorPatchDriftAllowed(t *testing.T) {
	if !CompatibleSchema("1.9.9") {
		t.Fatal("CompatibleSchema(1.9.9) should be true against a 1.x build: only major must match")
	}
}

func TestCompatibleSchemaDifferentMajorRejected(t *testing.T) {
	if CompatibleSchema("99.0.0") {
		t.Fatal("CompatibleSchema(99.0.0) should be false")
	}
}

func TestCompatibleSchemaInvalidRejected(t *testing.T) {
	if CompatibleSchema("garbage") {
		t.Fatal("CompatibleSchema(garbage) should be false")
	}
}
