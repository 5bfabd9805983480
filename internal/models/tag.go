package models

import "fmt"

type TagName string

const (
	TagJogging  TagName = "JOGGING"
	TagFitness  TagName = "FITNESS"
	TagCrossfit TagName = "CROSSFIT"
)

// ParseTagName resolves a tag string against the fixed taxonomy. Unlike role
// parsing there is no fallback; an unknown name is an error naming the input.
func ParseTagName(s string) (TagName, error) {
	switch TagName(s) {
	case TagJogging, TagFitness, TagCrossfit:
		return TagName(s), nil
	}
	return "", fmt.Errorf("unknown tag %q", s)
}

type LevelName string

const (
	LevelFirst   LevelName = "FIRST_LEVEL"
	LevelSecond  LevelName = "SECOND_LEVEL"
	LevelThird   LevelName = "THIRD_LEVEL"
	LevelFourth  LevelName = "FOURTH_LEVEL"
	LevelFifth   LevelName = "FIFTH_LEVEL"
	LevelSixth   LevelName = "SIXTH_LEVEL"
	LevelSeventh LevelName = "SEVENTH_LEVEL"
	LevelEighth  LevelName = "EIGHTH_LEVEL"
	LevelNinth   LevelName = "NINTH_LEVEL"
	LevelTenth   LevelName = "TENTH_LEVEL"
)

// Level rows exist independently of tags until linked; the numeric id (1..10)
// is the public handle used when an elevated user changes a tag's level.
type Level struct {
	ID   int32
	Name LevelName
}

// Tag is a shared taxonomy entry. Level is optional until assigned.
type Tag struct {
	ID    int32
	Name  TagName
	Level *Level
}

func (t Tag) String() string {
	if t.Level == nil {
		return string(t.Name)
	}
	return fmt.Sprintf("%s: %s", t.Name, t.Level.Name)
}
