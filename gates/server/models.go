package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"io"
	"playerd/domain"
	"strconv"
)

const (
	rootMessage        = "http get request sent to root api endpoint"
	serverErrorMessage = "Server error"
	playerExistsMsg    = "Player already exists"
	invalidBodyMsg     = "Invalid request body"
	bodyTooLargeMsg    = "Request body too large"
)

var errTrailingData = errors.New("unexpected data after JSON body")

// textField takes a JSON string, number or bool and keeps its text form, so
// {"score": 5} is stored as "5". null reads as empty.
type textField string

func (f *textField) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*f = ""
	case string:
		*f = textField(t)
	case json.Number:
		*f = textField(t.String())
	case bool:
		*f = textField(strconv.FormatBool(t))
	default:
		return fmt.Errorf("expected text, got %s", b)
	}
	return nil
}

type registerRequest struct {
	Name   textField `json:"name"`
	Player textField `json:"player"`
	Score  textField `json:"score"`
}

func (r registerRequest) toDomain() domain.NewPlayer {
	return domain.NewPlayer{
		Name:   string(r.Name),
		Handle: string(r.Player),
		Score:  string(r.Score),
	}
}

// decodeRegisterRequest reads a JSON body strictly: one object, nothing after
// it. Bodies that are not application/json, and empty ones, read as a
// request with every field missing.
func decodeRegisterRequest(c *gin.Context) (registerRequest, error) {
	var req registerRequest
	if c.ContentType() != binding.MIMEJSON {
		return req, nil
	}
	body, err := c.GetRawData()
	if err != nil {
		return req, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return req, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&req); err != nil {
		return req, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return req, errTrailingData
	}
	return req, nil
}

type tokenResponse struct {
	Token string `json:"token"`
}

type errorMsg struct {
	Msg string `json:"msg"`
}

type errorsResponse struct {
	Errors interface{} `json:"errors"`
}
