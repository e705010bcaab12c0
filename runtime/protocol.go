package runtime

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"quiz-lab/domain"
	"quiz-lab/domain/event"
	"quiz-lab/errors"
)

var validate = validator.New()

// DecodeCommand turns one inbound JSON frame into a typed command.
// The type discriminator selects the variant and the variant's required
// fields are validated before anything reaches the coordinator, so a
// malformed frame can never cause a partial mutation.
func DecodeCommand(raw []byte) (domain.Command, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}

	switch head.Type {
	case domain.JoinLobbyCommand{}.Type():
		return decode[domain.JoinLobbyCommand](raw)
	case domain.CreateRoomCommand{}.Type():
		return decode[domain.CreateRoomCommand](raw)
	case domain.JoinRoomCommand{}.Type():
		return decode[domain.JoinRoomCommand](raw)
	case domain.LeaveRoomCommand{}.Type():
		return decode[domain.LeaveRoomCommand](raw)
	case domain.GetRoomsCommand{}.Type():
		return domain.GetRoomsCommand{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", errors.ErrUnknownMessageType, head.Type)
	}
}

func decode[T domain.Command](raw []byte) (domain.Command, error) {
	var cmd T
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	if err := validate.Struct(cmd); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	return cmd, nil
}

// EncodeEvent serializes an outbound event as a flat JSON object with the
// "type" discriminator next to the variant's own fields.
func EncodeEvent(e event.Event) ([]byte, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]any)
	if err = json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	fields["type"] = e.Type()
	return json.Marshal(fields)
}
