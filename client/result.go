package client

import (
	"encoding/json"
	"regexp"
)

// The backend's create-order contract is not pinned down: some deployments
// answer with the created order under "pedido", some with a bare id under
// one of several names, some with only {mensaje: "Pedido creado"}. Until the
// contract is fixed the guessing is confined to InterpretCreateResponse and
// expressed as a tagged result, so callers never touch the raw payload.

// CreateResult is the interpreted outcome of a create-order call.
type CreateResult interface {
	isCreateResult()
}

// Created means the order was accepted. Message is the server's own wording
// when it sent one.
type Created struct {
	OrderID string
	Message string
}

// Rejected means the response matched no known success shape. Reason carries
// the raw payload for the user and the logs.
type Rejected struct {
	Reason string
}

func (Created) isCreateResult()  {}
func (Rejected) isCreateResult() {}

var createdMessage = regexp.MustCompile(`(?i)pedido creado`)

// InterpretCreateResponse maps a raw create-order payload to a tagged
// result. A response counts as success when it carries a nested order
// object, an id under any of the known names, or a message matching
// "pedido creado" (case-insensitive).
func InterpretCreateResponse(payload map[string]interface{}) CreateResult {
	if payload == nil {
		return Rejected{Reason: "respuesta vacía del servidor"}
	}

	message, _ := payload["mensaje"].(string)

	if nested, ok := payload["pedido"].(map[string]interface{}); ok {
		return Created{OrderID: idOf(nested), Message: message}
	}

	if id := idOf(payload); id != "" {
		return Created{OrderID: id, Message: message}
	}

	if createdMessage.MatchString(message) {
		return Created{Message: message}
	}

	reason := "respuesta inesperada del servidor"
	if raw, err := json.Marshal(payload); err == nil && len(payload) > 0 {
		reason = reason + ": " + string(raw)
	}
	return Rejected{Reason: reason}
}

// idOf pulls an order id from a payload under any of the names the backend
// has used.
func idOf(payload map[string]interface{}) string {
	for _, key := range []string{"_id", "id", "pedidoId"} {
		if v, ok := payload[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
