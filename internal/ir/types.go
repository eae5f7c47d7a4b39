package ir

// Outcome cases. Success carries the operation result; the others carry an
// error object with a message.
const (
	CaseSuccess              = "Success"
	CaseUnrecognizedUnitKind = "UnrecognizedUnitKind"
	CaseInvalidArgument      = "InvalidArgument"
)

// Run groups the evaluations made against one constant set.
type Run struct {
	ID            string   `json:"id"`
	ConstantsName string   `json:"constants_name"`
	ConstantsHash string   `json:"constants_hash"`
	Constants     IRObject `json:"constants"`
	EngineVersion string   `json:"engine_version"`
	IRVersion     string   `json:"ir_version"`
}

// Evaluation records one operation call.
type Evaluation struct {
	ID        string   `json:"id"` // Content-addressed hash
	RunID     string   `json:"run_id"`
	Operation string   `json:"operation"`
	Args      IRObject `json:"args"`
	Seq       int64    `json:"seq"` // Logical clock
}

// Outcome records the result of an evaluation.
type Outcome struct {
	ID           string   `json:"id"` // Content-addressed hash
	EvaluationID string   `json:"evaluation_id"`
	Case         string   `json:"case"`
	Result       IRObject `json:"result"`
	Digest       string   `json:"digest"` // ResultDigest of case and result
	Seq          int64    `json:"seq"`
}
