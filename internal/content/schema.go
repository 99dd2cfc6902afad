package content

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named JSON Schema definition for one content shape.
type Schema struct {
	Name       string
	Definition map[string]any
}

var stringProp = map[string]any{"type": "string"}

var questionDefinition = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"question": map[string]any{"type": "string", "minLength": 1},
		"options": map[string]any{
			"type":  "array",
			"items": stringProp,
		},
		"answer":  map[string]any{"type": "string", "minLength": 1},
		"subject": stringProp,
		"topic":   stringProp,
		"chapter": stringProp,
		"explanation": map[string]any{
			"oneOf": []any{
				stringProp,
				map[string]any{
					"type": "object",
					"properties": map[string]any{
						"correct": stringProp,
						"whyWrong": map[string]any{
							"type":                 "object",
							"additionalProperties": stringProp,
						},
					},
				},
			},
		},
	},
	"required": []any{"question", "answer"},
}

var levelHeader = map[string]any{
	"id":    map[string]any{"type": "integer"},
	"title": stringProp,
	"desc":  stringProp,
}

func withHeader(props map[string]any) map[string]any {
	out := make(map[string]any, len(props)+len(levelHeader))
	for k, v := range levelHeader {
		out[k] = v
	}
	for k, v := range props {
		out[k] = v
	}
	return out
}

// PuzzleLevelSchema is the shape of one entry in puzzle.json.
var PuzzleLevelSchema = &Schema{
	Name: "puzzle-level",
	Definition: map[string]any{
		"type": "object",
		"properties": withHeader(map[string]any{
			"question": stringProp,
			"hint":     stringProp,
			"image":    stringProp,
			"grid":     map[string]any{"type": "integer"},
		}),
	},
}

// DragDropLevelSchema is the shape of one entry in dragdrop.json. Pairs may
// be spelled {left,right} or {drag,target}.
var DragDropLevelSchema = &Schema{
	Name: "dragdrop-level",
	Definition: map[string]any{
		"type": "object",
		"properties": withHeader(map[string]any{
			"pairs": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"left":   stringProp,
						"right":  stringProp,
						"drag":   stringProp,
						"target": stringProp,
					},
					"anyOf": []any{
						map[string]any{"required": []any{"left", "right"}},
						map[string]any{"required": []any{"drag", "target"}},
					},
				},
			},
		}),
		"required": []any{"pairs"},
	},
}

// BattleLevelSchema is the shape of one entry in battle.json.
var BattleLevelSchema = &Schema{
	Name: "battle-level",
	Definition: map[string]any{
		"type": "object",
		"properties": withHeader(map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    questionDefinition,
			},
		}),
		"required": []any{"questions"},
	},
}

// LevelFileSchema is the file shape for level-based modes: a bare array of
// level objects. Wrapper objects such as {"levels": [...]} are rejected.
var LevelFileSchema = &Schema{
	Name: "level-file",
	Definition: map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "object"},
	},
}

// QuizFileSchema is the file shape for subject quizzes.
var QuizFileSchema = &Schema{
	Name: "quiz-file",
	Definition: map[string]any{
		"type":  "array",
		"items": questionDefinition,
	},
}

// LessonFileSchema is the file shape for video and music lesson lists.
var LessonFileSchema = &Schema{
	Name: "lesson-file",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": withHeader(map[string]any{
				"src":       stringProp,
				"subtitles": stringProp,
				"lyrics":    stringProp,
			}),
			"required": []any{"title", "src"},
		},
	},
}

// LevelSchema returns the per-level schema for a mode, or nil for quiz
// files, which are validated whole.
func LevelSchema(m Mode) *Schema {
	switch m {
	case ModePuzzle:
		return PuzzleLevelSchema
	case ModeDragDrop:
		return DragDropLevelSchema
	case ModeBattle:
		return BattleLevelSchema
	default:
		return nil
	}
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// Validate checks a parsed JSON value (as produced by json.Unmarshal into
// any) against the schema.
func (s *Schema) Validate(v any) error {
	compiled, err := s.compiled()
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", s.Name, err)
	}
	if err := compiled.Validate(v); err != nil {
		return fmt.Errorf("schema %s: %w", s.Name, err)
	}
	return nil
}

// ValidateJSON parses raw and validates it.
func (s *Schema) ValidateJSON(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return s.Validate(parsed)
}

func (s *Schema) compiled() (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(s.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a plain JSON value; round-trip the definition.
	defBytes, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", s.Name)
	if err := c.AddResource(url, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(s.Name, compiled)
	return compiled, nil
}
