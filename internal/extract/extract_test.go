package extract

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestExtractFencedObjectWithProse(t *testing.T) {
	raw := "Here you go:\n```json\n{\"title\":\"T\",\"content\":\"C\",\"funFact\":\"F\"}\n```\nEnjoy!"

	payload, err := Extract(raw, ShapeObject)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	want := map[string]string{"title": "T", "content": "C", "funFact": "F"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestExtractBareQuizArray(t *testing.T) {
	raw := `[{"question":"Q","options":["a","b"],"correctAnswer":0,"explanation":"E"}]`

	payload, err := Extract(raw, ShapeArray)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if string(payload) != raw {
		t.Errorf("Expected payload unchanged, got %s", payload)
	}
}

func TestExtractRoundTripThroughFenceAndProse(t *testing.T) {
	inner := `{"title":"Planets","content":"Stuff about planets","funFact":"Saturn floats"}`
	raw := "Sure! Here is the explanation you asked for.\n```json\n" + inner + "\n```\nHope this helps."

	payload, err := Extract(raw, ShapeObject)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if string(payload) != inner {
		t.Errorf("Expected %s, got %s", inner, payload)
	}
}

func TestExtractNoJSONFails(t *testing.T) {
	_, err := Extract("I could not produce anything useful, sorry.", ShapeObject)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("Expected ErrMalformedResponse, got %v", err)
	}
}

func TestExtractInvalidJSONFails(t *testing.T) {
	_, err := Extract(`{"title": "T", "content": `, ShapeObject)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("Expected ErrMalformedResponse, got %v", err)
	}
}

func TestExtractShapeMismatchFails(t *testing.T) {
	object := `{"title":"T"}`
	array := `[{"question":"Q"}]`

	if _, err := Extract(object, ShapeArray); !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("object against array shape: expected ErrMalformedResponse, got %v", err)
	}
	if _, err := Extract(array, ShapeObject); !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("array against object shape: expected ErrMalformedResponse, got %v", err)
	}
}

func TestExtractGameRequiresHTMLCode(t *testing.T) {
	missing := `{"title":"Game","description":"D"}`
	if _, err := Extract(missing, ShapeGame); !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("missing htmlCode: expected ErrMalformedResponse, got %v", err)
	}

	empty := `{"title":"Game","htmlCode":""}`
	if _, err := Extract(empty, ShapeGame); !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("empty htmlCode: expected ErrMalformedResponse, got %v", err)
	}

	valid := `{"title":"Game","htmlCode":"<html></html>"}`
	if _, err := Extract(valid, ShapeGame); err != nil {
		t.Errorf("valid game payload rejected: %v", err)
	}
}

func TestExtractLeadingProseWithoutFence(t *testing.T) {
	raw := "Here is your JSON: {\"title\":\"T\",\"content\":\"C\",\"funFact\":\"F\"}"

	payload, err := Extract(raw, ShapeObject)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if got["title"] != "T" {
		t.Errorf("Expected title T, got %q", got["title"])
	}
}
