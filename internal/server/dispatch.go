package server

import (
	"encoding/json"
	"log"

	"github.com/Tyrowin/goboard/internal/wire"
)

// worker consumes framed requests until shutdown. Each request maps to
// exactly one store operation; the reply is framed and written back on the
// originating connection.
func (s *Server) worker() {
	for {
		select {
		case <-s.ctx.Done():
			return
		case req := <-s.requests:
			s.handle(req)
		}
	}
}

func (s *Server) handle(req request) {
	var msg wire.Message
	if err := json.Unmarshal(req.payload, &msg); err != nil {
		log.Printf("Invalid request from %s: %v", req.conn.addr, err)
		s.reply(req.conn, &wire.Message{Reply: wire.ReplyUnknownError})
		return
	}

	resp := s.dispatch(&msg)
	s.reply(req.conn, resp)

	// A logged-out client's connection is closed once the reply is out.
	if msg.Command == wire.CmdLogout {
		req.conn.Close()
	}
}

func (s *Server) reply(c *conn, msg *wire.Message) {
	if err := c.WriteMessage(msg); err != nil {
		log.Printf("Error writing reply to %s: %v", c.addr, err)
		c.Close()
	}
}

// dispatch maps a command tag to its store operation. The command set is
// closed; an unrecognized tag is a local invariant violation, logged and
// surfaced as UNKNOWN_ERROR rather than crashing the worker.
func (s *Server) dispatch(msg *wire.Message) *wire.Message {
	resp := &wire.Message{}
	switch msg.Command {
	case wire.CmdLogin:
		resp.Reply, resp.User = s.store.Login(msg.Nickname, msg.Password)
	case wire.CmdLogout:
		resp.Reply = s.store.Logout(msg.Nickname)
	case wire.CmdListProjects:
		resp.Reply, resp.Projects = s.store.ListProjects(msg.Nickname)
	case wire.CmdCreateProject:
		resp.Reply = s.store.CreateProject(msg.Nickname, msg.Project)
	case wire.CmdAddMember:
		resp.Reply = s.store.AddMember(msg.Nickname, msg.Project, msg.NewMember)
	case wire.CmdShowMembers:
		resp.Reply, resp.Members = s.store.ShowMembers(msg.Nickname, msg.Project)
	case wire.CmdShowCards:
		resp.Reply, resp.Cards = s.store.ShowCards(msg.Nickname, msg.Project)
	case wire.CmdShowCard:
		resp.Reply, resp.CardDetail = s.store.ShowCard(msg.Nickname, msg.Project, msg.Card)
	case wire.CmdAddCard:
		resp.Reply = s.store.AddCard(msg.Nickname, msg.Project, msg.Card, msg.Description)
	case wire.CmdMoveCard:
		resp.Reply = s.store.MoveCard(msg.Nickname, msg.Project, msg.Card, msg.Source, msg.Dest)
	case wire.CmdCancelProject:
		resp.Reply = s.store.CancelProject(msg.Nickname, msg.Project)
	default:
		log.Printf("Unrecognized command tag %q", msg.Command)
		resp.Reply = wire.ReplyUnknownError
	}
	return resp
}
