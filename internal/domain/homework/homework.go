package homework

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// Statuses the Practicum API is documented to return for a homework.
const (
	StatusApproved  = "approved"
	StatusReviewing = "reviewing"
	StatusRejected  = "rejected"
)

// Verdicts maps every documented status to its user-facing text.
// The texts are part of the notification contract and must not be reworded.
var Verdicts = map[string]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// Error kinds the poll loop classifies on. Transport and envelope errors keep
// the query cursor in place; content errors do not (see PollerService).
var (
	ErrTransport     = errors.New("homework status API request failed")
	ErrSchema        = errors.New("unexpected response format")
	ErrMissingField  = errors.New("missing required field")
	ErrUnknownStatus = errors.New("undocumented homework status")
)

// Record is a single validated homework entry.
type Record struct {
	Name   string
	Status string
}

// Envelope is the validated top-level API response. Homeworks entries are kept
// raw on purpose: a malformed record must stay distinguishable from a
// malformed envelope, so per-record validation happens later, in ParseStatus.
type Envelope struct {
	Homeworks   []any
	CurrentDate int64
}

// ParseEnvelope validates the raw API response body. It fails fast on any
// envelope violation: a broken envelope must never be coerced into an empty
// result, because an empty homeworks list is itself a valid "nothing new"
// response.
func ParseEnvelope(raw []byte) (*Envelope, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: response is not valid JSON: %v", ErrSchema, err)
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top-level value is %T, expected an object", ErrSchema, doc)
	}

	rawHomeworks, ok := obj["homeworks"]
	if !ok {
		return nil, fmt.Errorf("%w: homeworks", ErrMissingField)
	}
	rawDate, ok := obj["current_date"]
	if !ok {
		return nil, fmt.Errorf("%w: current_date", ErrMissingField)
	}

	list, ok := rawHomeworks.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: homeworks is %T, expected a list", ErrSchema, rawHomeworks)
	}
	date, ok := rawDate.(float64)
	if !ok || date != math.Trunc(date) {
		return nil, fmt.Errorf("%w: current_date is %v, expected an integer", ErrSchema, rawDate)
	}

	return &Envelope{Homeworks: list, CurrentDate: int64(date)}, nil
}

// ParseStatus validates one homework entry and produces the notification text.
// Pure function: no I/O, no state.
func ParseStatus(entry any) (string, error) {
	record, err := parseRecord(entry)
	if err != nil {
		return "", err
	}

	verdict, ok := Verdicts[record.Status]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, record.Status)
	}

	return fmt.Sprintf("Изменился статус проверки работы \"%s\". %s", record.Name, verdict), nil
}

func parseRecord(entry any) (Record, error) {
	obj, ok := entry.(map[string]any)
	if !ok {
		return Record{}, fmt.Errorf("%w: homework entry is %T, expected an object", ErrSchema, entry)
	}

	name, ok := obj["homework_name"].(string)
	if !ok {
		return Record{}, fmt.Errorf("%w: homework_name", ErrMissingField)
	}
	status, ok := obj["status"].(string)
	if !ok {
		return Record{}, fmt.Errorf("%w: status", ErrMissingField)
	}

	return Record{Name: name, Status: status}, nil
}
