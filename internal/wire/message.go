package wire

import "github.com/Tyrowin/goboard/internal/board"

// Command is the request tag of a client message. The command set is
// closed; the framing layer delivers payloads verbatim and the dispatcher
// treats an unrecognized tag as a local invariant violation.
type Command string

const (
	CmdLogin         Command = "LOGIN"
	CmdLogout        Command = "LOGOUT"
	CmdListProjects  Command = "LIST_PROJECTS"
	CmdCreateProject Command = "CREATE_PROJECT"
	CmdAddMember     Command = "ADD_MEMBER"
	CmdShowMembers   Command = "SHOW_MEMBERS"
	CmdShowCards     Command = "SHOW_CARDS"
	CmdShowCard      Command = "SHOW_CARD"
	CmdAddCard       Command = "ADD_CARD"
	CmdMoveCard      Command = "MOVE_CARD"
	CmdCancelProject Command = "CANCEL_PROJECT"
)

// Reply is the result tag of a server response. Every store operation
// produces exactly one Reply; there is no partial outcome.
type Reply string

const (
	ReplyOK                  Reply = "OK"
	ReplyAlreadyRegistered   Reply = "ALREADY_REGISTERED"
	ReplyNotRegistered       Reply = "NOT_REGISTERED"
	ReplyWrongPassword       Reply = "WRONG_PASSW"
	ReplyAlreadyOnline       Reply = "ALREADY_ONLINE"
	ReplyProjectExists       Reply = "PROJECT_EXISTS"
	ReplyAlreadyMember       Reply = "ALREADY_MEMBER"
	ReplyNonexistentProject  Reply = "NONEXISTENT_PROJECT"
	ReplyNonexistentCard     Reply = "NONEXISTENT_CARD"
	ReplyNonexistentList     Reply = "NONEXISTENT_LIST"
	ReplyCardExists          Reply = "CARD_EXISTS"
	ReplyMoveForbidden       Reply = "MOVE_FORBIDDEN"
	ReplyCancelForbidden     Reply = "CANCEL_FORBIDDEN"
	ReplyUnableCreateProject Reply = "UNABLE_CREATE_PROJECT"
	ReplyUnknownError        Reply = "UNKNOWN_ERROR"
)

// Message is the tagged record exchanged between client and server. Field
// presence is command-dependent; absent fields are omitted from the JSON
// encoding.
type Message struct {
	Command Command `json:"command,omitempty"`
	Reply   Reply   `json:"reply,omitempty"`

	// Request fields (client to server).
	Nickname    string `json:"nickname,omitempty"`
	Password    string `json:"password,omitempty"`
	Project     string `json:"project,omitempty"`
	NewMember   string `json:"newMember,omitempty"`
	Card        string `json:"card,omitempty"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source,omitempty"`
	Dest        string `json:"dest,omitempty"`

	// Response payloads (server to client).
	User       *board.User             `json:"user,omitempty"`
	Projects   []board.ProjectSnapshot `json:"projects,omitempty"`
	Members    []string                `json:"members,omitempty"`
	Cards      []string                `json:"cards,omitempty"`
	CardDetail *board.Card             `json:"cardDetail,omitempty"`
}
