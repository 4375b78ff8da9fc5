package telegram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionTopic  = "topic"  // topic:<index>
	actionAll    = "all"    // select every topic
	actionCount  = "count"  // count:<n>
	actionStart  = "start"  // start quiz with the current selection
	actionPicker = "picker" // open the topic picker
	actionAnswer = "ans"    // ans:<session>:<question>:<position>
	actionEmpty  = "empty"  // empty:<session>:<question>
	actionNav    = "nav"    // nav:<session>:<question>
	actionFinish = "fin"    // fin:<session>
	actionReview = "rev"    // rev:<attempt>
	actionNoop   = "noop"
)

var errInvalidCallback = errors.New("invalid callback data")

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// intParam returns the i-th parameter as a non-negative integer.
func (cd callbackData) intParam(i int) (int, error) {
	if i >= len(cd.Params) {
		return 0, fmt.Errorf("%w: %q has no parameter %d", errInvalidCallback, cd.Raw, i)
	}
	n, err := strconv.Atoi(cd.Params[i])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", errInvalidCallback, cd.Raw)
	}
	return n, nil
}

func (cd callbackData) stringParam(i int) (string, error) {
	if i >= len(cd.Params) || cd.Params[i] == "" {
		return "", fmt.Errorf("%w: %q has no parameter %d", errInvalidCallback, cd.Raw, i)
	}
	return cd.Params[i], nil
}

func buildTopicToggleCallback(index int) string {
	return callbackData{Action: actionTopic, Params: []string{strconv.Itoa(index)}}.encode()
}

func buildSelectAllCallback() string {
	return actionAll
}

func buildCountCallback(n int) string {
	return callbackData{Action: actionCount, Params: []string{strconv.Itoa(n)}}.encode()
}

func buildStartCallback() string {
	return actionStart
}

func buildPickerCallback() string {
	return actionPicker
}

// buildAnswerCallback builds callback data for a tapped option at a display position.
func buildAnswerCallback(sessionID string, question, position int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{sessionID, strconv.Itoa(question), strconv.Itoa(position)},
	}.encode()
}

func buildEmptyAnswerCallback(sessionID string, question int) string {
	return callbackData{
		Action: actionEmpty,
		Params: []string{sessionID, strconv.Itoa(question)},
	}.encode()
}

func buildNavCallback(sessionID string, question int) string {
	return callbackData{
		Action: actionNav,
		Params: []string{sessionID, strconv.Itoa(question)},
	}.encode()
}

func buildFinishCallback(sessionID string) string {
	return callbackData{Action: actionFinish, Params: []string{sessionID}}.encode()
}

func buildReviewCallback(attemptID int64) string {
	return callbackData{Action: actionReview, Params: []string{strconv.FormatInt(attemptID, 10)}}.encode()
}
