package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidewater-db/tidewater/internal/graph"
	"github.com/tidewater-db/tidewater/internal/ir"
)

func sampleDocument(t *testing.T) []byte {
	t.Helper()
	rows := graph.NewRowType(ir.Int32(false), ir.String(ir.UnlimitedPrecision, true))
	fn := ir.NewPath(ir.EmptyProvenance, ir.Int32(false), "row.0")
	g := graph.New(
		graph.NewSource(0, rows, "orders", ""),
		graph.NewMap(1, graph.NewRowType(ir.Int32(false)), 0, fn, ""),
		graph.NewSink(2, graph.NewRowType(ir.Int32(false)), []int64{1}, "ids", ""),
	)
	data, err := g.MarshalCanonical()
	require.NoError(t, err)
	return data
}

func TestValidateAcceptsEmittedDocument(t *testing.T) {
	assert.NoError(t, Validate(sampleDocument(t)))
}

func TestValidateRejectsUnknownKind(t *testing.T) {
	document := `{
		"metadata": {"ir_version": "1", "compiler_version": "0.1.0"},
		"operators": [
			{"id": 0, "kind": "scan", "label": "", "inputs": [], "payload": {}}
		]
	}`
	err := Validate([]byte(document))
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, err.Error(), "SCHEMA_VALIDATION")
}

func TestValidateRejectsMissingMetadata(t *testing.T) {
	err := Validate([]byte(`{"operators": []}`))
	require.Error(t, err)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestValidateRejectsNegativeID(t *testing.T) {
	document := `{
		"metadata": {"ir_version": "1", "compiler_version": "0.1.0"},
		"operators": [
			{"id": -1, "kind": "source", "label": "", "inputs": [],
			 "payload": {"table": "t", "layout": {"columns": []}}}
		]
	}`
	err := Validate([]byte(document))
	require.Error(t, err)
}

func TestValidateRejectsSourcePayloadMissingTable(t *testing.T) {
	document := `{
		"metadata": {"ir_version": "1", "compiler_version": "0.1.0"},
		"operators": [
			{"id": 0, "kind": "source", "label": "", "inputs": [],
			 "payload": {"layout": {"columns": []}}}
		]
	}`
	err := Validate([]byte(document))
	require.Error(t, err)
}

func TestValidateRejectsMalformedJSON(t *testing.T) {
	err := Validate([]byte(`{"metadata":`))
	require.Error(t, err)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestCheckOrderingAcceptsEmittedDocument(t *testing.T) {
	assert.NoError(t, CheckOrdering(sampleDocument(t)))
}

func TestCheckOrderingRejectsForwardReference(t *testing.T) {
	document := `{
		"metadata": {"ir_version": "1", "compiler_version": "0.1.0"},
		"operators": [
			{"id": 0, "kind": "sink", "inputs": [1], "payload": {}},
			{"id": 1, "kind": "source", "inputs": [], "payload": {}}
		]
	}`
	err := CheckOrdering([]byte(document))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not declared earlier")
}

func TestCheckOrderingRejectsDuplicateID(t *testing.T) {
	document := `{
		"operators": [
			{"id": 0, "inputs": []},
			{"id": 0, "inputs": []}
		]
	}`
	err := CheckOrdering([]byte(document))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate operator id")
}

func TestCheckOrderingRejectsSelfReference(t *testing.T) {
	document := `{"operators": [{"id": 0, "inputs": [0]}]}`
	err := CheckOrdering([]byte(document))
	require.Error(t, err)
}

func TestSourceIsNonEmpty(t *testing.T) {
	assert.Contains(t, Source(), "#Document")
}
