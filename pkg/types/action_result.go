package types

// ActionType identifies one of the engine's filesystem operations.
type ActionType string

const (
	ActionMoveFile     ActionType = "move_file"
	ActionMoveFolder   ActionType = "move_folder"
	ActionRenameFolder ActionType = "rename_folder"
	ActionCreateFolder ActionType = "create_folder"
	ActionRemoveFolder ActionType = "remove_empty_folder"
)

// ActionResult holds the outcome of one attempted action on a single entry.
type ActionResult struct {
	Action          ActionType `json:"action"`
	SourcePath      string     `json:"source_path"`
	DestinationPath string     `json:"destination_path,omitempty"`
	Performed       bool       `json:"performed"`
	Reason          string     `json:"reason,omitempty"` // set when the action was skipped
	Error           error      `json:"-"`
}
