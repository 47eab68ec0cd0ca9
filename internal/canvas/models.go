// internal/canvas/models.go
package canvas

// GenerateRequest is the body of POST /api/business/canvas/generate.
type GenerateRequest struct {
	Prompt string `json:"prompt"`
	// Name replaces the timestamp-derived name when non-empty.
	Name string `json:"name,omitempty"`
}

// Response messages.
const (
	MsgGenerated  = "Canvas generated successfully"
	MsgListed     = "Canvases retrieved successfully"
	MsgRetrieved  = "Canvas retrieved successfully"
	MsgUpdated    = "Canvas updated successfully"
	MsgDeleted    = "Canvas deleted successfully"
	MsgDuplicated = "Canvas duplicated successfully"
	MsgBlocks     = "Canvas blocks retrieved successfully"
)

const copySuffix = " (Copy)"
