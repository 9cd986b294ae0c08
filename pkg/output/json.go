package output

import (
	"encoding/json"
	"io"

	"github.com/raykroeker/vimfiles/pkg/errors"
	"github.com/raykroeker/vimfiles/pkg/types"
)

// JSON renders machine-readable output, one document per call.
type JSON struct {
	encoder *json.Encoder
}

// NewJSON creates a JSON renderer.
func NewJSON(w io.Writer) *JSON {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return &JSON{encoder: encoder}
}

type jsonResult struct {
	*types.CommandResult
	Summary *types.Summary `json:"summary,omitempty"`
}

type jsonError struct {
	Error  string           `json:"error"`
	Code   errors.ErrorCode `json:"code"`
	Output string           `json:"output,omitempty"`
}

func (r *JSON) RenderResult(result *types.CommandResult) error {
	doc := jsonResult{CommandResult: result}
	if result.Report != nil {
		s := result.Report.Summarize()
		doc.Summary = &s
	}
	return r.encoder.Encode(doc)
}

func (r *JSON) RenderError(err error) error {
	msg, _ := splitOutput(err)
	return r.encoder.Encode(jsonError{
		Error:  msg,
		Code:   errors.GetErrorCode(err),
		Output: errors.GetOutput(err),
	})
}

func (r *JSON) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}
