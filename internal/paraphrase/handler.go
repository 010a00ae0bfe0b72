// Package paraphrase relays caller text to a chat-completion API and returns
// the rewritten text.
package paraphrase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kiliankoe/paraphrase-relay/internal/ai/openai"
	"github.com/rs/zerolog/log"
)

const (
	PromptPrefix = "Paraphrase this text: "
	Temperature  = 0.7
	Fallback     = "Error paraphrasing"
)

// Bodies for the non-200 responses. They are the only failure detail a
// caller ever sees.
const (
	MsgInvalidRequest  = "Invalid request body"
	MsgMissingKey      = "API key not set"
	MsgContactFailed   = "Failed to contact OpenAI"
	MsgUpstreamError   = "OpenAI API error"
	MsgInvalidResponse = "Invalid response from OpenAI"
)

var errMissingText = errors.New("missing field text")

type Request struct {
	Text string `json:"text"`
}

// UnmarshalJSON rejects bodies without a text field. An empty string is
// accepted.
func (r *Request) UnmarshalJSON(b []byte) error {
	var raw struct {
		Text *string `json:"text"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.Text == nil {
		return errMissingText
	}
	r.Text = *raw.Text
	return nil
}

type Response struct {
	Paraphrased string `json:"paraphrased"`
}

type Completer interface {
	ChatCompletion(ctx context.Context, req openai.ChatRequest) (any, error)
}

type Handler struct {
	client Completer
	model  string
	hasKey bool
}

// NewHandler builds the relay. hasKey reports whether a credential was
// configured; it is checked on every request so a keyless server still runs.
func NewHandler(client Completer, model string, hasKey bool) *Handler {
	return &Handler{client: client, model: model, hasKey: hasKey}
}

func (h *Handler) Register(r gin.IRoutes) {
	r.POST("/paraphrase", h.Paraphrase)
}

func (h *Handler) Paraphrase(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("invalid paraphrase request")
		c.String(http.StatusBadRequest, MsgInvalidRequest)
		return
	}
	log.Info().Str("text", req.Text).Msg("received paraphrase request")

	if !h.hasKey {
		log.Error().Msg("OPENAI_API_KEY not set")
		c.String(http.StatusInternalServerError, MsgMissingKey)
		return
	}

	body, err := h.client.ChatCompletion(c.Request.Context(), h.chatRequest(req.Text))
	if err != nil {
		c.String(http.StatusInternalServerError, failure(err))
		return
	}

	out, ok := openai.MessageContent(body)
	if !ok {
		log.Warn().Msg("openai response has no choices[0].message.content")
		out = Fallback
	}
	log.Info().Str("paraphrased", out).Msg("paraphrased result")
	c.JSON(http.StatusOK, Response{Paraphrased: out})
}

func (h *Handler) chatRequest(text string) openai.ChatRequest {
	return openai.ChatRequest{
		Model:       h.model,
		Messages:    []openai.Message{{Role: "user", Content: PromptPrefix + text}},
		Temperature: Temperature,
	}
}

// failure logs err and picks the fixed body returned to the caller.
func failure(err error) string {
	var se *openai.StatusError
	switch {
	case errors.Is(err, openai.ErrMissingKey):
		log.Error().Msg("OPENAI_API_KEY not set")
		return MsgMissingKey
	case errors.As(err, &se):
		log.Error().Int("status", se.Code).Str("body", se.Body).Msg("openai api error")
		return MsgUpstreamError
	case errors.Is(err, openai.ErrDecode):
		log.Error().Err(err).Msg("error parsing openai response")
		return MsgInvalidResponse
	default:
		log.Error().Err(err).Msg("error contacting openai")
		return MsgContactFailed
	}
}
