package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"golang.org/x/sync/errgroup"

	"github.com/playperu/adjquiz/internal/adjquiz"
	"github.com/playperu/adjquiz/internal/lang"
)

// wsCommand is a client message on the session socket.
type wsCommand struct {
	Type          string `json:"type"`
	QuestionIndex *int   `json:"questionIndex,omitempty"`
	ChoiceIndex   *int   `json:"choiceIndex,omitempty"`
	Language      string `json:"language,omitempty"`
}

// commandHandler applies one command. Results reach the client as broker
// events; a returned error is sent back on the socket only.
type commandHandler func(ctx context.Context, ps *playSession, cmd wsCommand) error

var (
	errUnsupportedLanguage = errors.New("unsupported language")
	errChoiceFields        = errors.New("questionIndex and choiceIndex are required")
	errHintFields          = errors.New("questionIndex is required")
)

func commandTable(logger *slog.Logger, prefs PreferenceStore) map[string]commandHandler {
	return map[string]commandHandler{
		"choice": func(_ context.Context, ps *playSession, cmd wsCommand) error {
			if cmd.QuestionIndex == nil || cmd.ChoiceIndex == nil {
				return errChoiceFields
			}
			ps.ctrl.OnChoiceClicked(*cmd.QuestionIndex, *cmd.ChoiceIndex)
			return nil
		},
		"hint": func(_ context.Context, ps *playSession, cmd wsCommand) error {
			if cmd.QuestionIndex == nil {
				return errHintFields
			}
			ps.ctrl.OnHintClicked(*cmd.QuestionIndex)
			return nil
		},
		"reset": func(ctx context.Context, ps *playSession, _ wsCommand) error {
			err := ps.ctrl.OnResetClicked(ctx)
			if err != nil && !errors.Is(err, adjquiz.ErrSuperseded) {
				logger.Warn("session reset failed", "session_id", ps.ID, "error", err)
			}
			return nil
		},
		"language": func(ctx context.Context, ps *playSession, cmd wsCommand) error {
			code, ok := lang.Normalize(cmd.Language)
			if !ok {
				return errUnsupportedLanguage
			}
			ps.ctrl.OnLanguageChanged(code)
			if err := prefs.SetLanguage(ctx, ps.VisitorID, code); err != nil {
				logger.Error("saving language preference failed", "visitor", ps.VisitorID, "error", err)
			}
			return nil
		},
	}
}

func handleWS(logger *slog.Logger, broker *Broker, prefs PreferenceStore) http.HandlerFunc {
	commands := commandTable(logger, prefs)

	return func(w http.ResponseWriter, r *http.Request) {
		ps := sessionFrom(r)

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Error("websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		ch := broker.Subscribe(ps.ID)
		defer broker.Unsubscribe(ps.ID, ch)

		g, ctx := errgroup.WithContext(r.Context())

		snap := ps.ctrl.Snapshot()
		if err := wsjson.Write(ctx, conn, Event{Type: EventSnapshot, Snapshot: &snap}); err != nil {
			logger.Debug("websocket write failed", "error", err)
			return
		}

		g.Go(func() error {
			for {
				var cmd wsCommand
				if err := wsjson.Read(ctx, conn, &cmd); err != nil {
					return err
				}

				var cmdErr error
				if handle, ok := commands[cmd.Type]; ok {
					cmdErr = handle(ctx, ps, cmd)
				} else {
					cmdErr = fmt.Errorf("unknown command %q", cmd.Type)
				}
				if cmdErr != nil {
					if err := wsjson.Write(ctx, conn, Event{Type: EventError, Errors: []string{cmdErr.Error()}}); err != nil {
						return err
					}
				}
			}
		})

		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case data := <-ch:
					if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
						return err
					}
				}
			}
		})

		err = g.Wait()
		switch {
		case websocket.CloseStatus(err) == websocket.StatusNormalClosure,
			websocket.CloseStatus(err) == websocket.StatusGoingAway,
			errors.Is(err, context.Canceled):
		default:
			logger.Debug("websocket session ended", "session_id", ps.ID, "error", err)
		}
		conn.Close(websocket.StatusNormalClosure, "")
	}
}
