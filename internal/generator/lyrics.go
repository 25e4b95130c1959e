package generator

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/valyala/fasttemplate"
)

const (
	LyricsModel = "mock-lyricist-v1"

	tagStart = "{{"
	tagEnd   = "}}"
)

// Answers are the questionnaire facts a template can refer to.
type Answers struct {
	Name              string
	Nickname          string
	Age               int
	Relationship      string
	PersonalityTraits []string
	Hobbies           []string
	FunnyStory        string
	Occupation        string
	PetPeeve          string
	ImportantPeople   string
	SharedMemory      string
	DesiredMessage    string
}

var defaultTraits = [3]string{"amazing", "wonderful", "incredible"}

// Values resolves every template token, substituting defaults for missing answers.
func (a Answers) Values() map[string]string {
	name := orDefault(a.Name, "Friend")
	age := "fabulous"
	if a.Age > 0 {
		age = strconv.Itoa(a.Age)
	}

	return map[string]string{
		"name":            name,
		"nickname":        orDefault(a.Nickname, name),
		"age":             age,
		"relationship":    orDefault(a.Relationship, "friend"),
		"trait1":          pick(a.PersonalityTraits, 0, defaultTraits[0]),
		"trait2":          pick(a.PersonalityTraits, 1, defaultTraits[1]),
		"trait3":          pick(a.PersonalityTraits, 2, defaultTraits[2]),
		"hobby1":          pick(a.Hobbies, 0, "having fun"),
		"hobby2":          pick(a.Hobbies, 1, "making memories"),
		"funnyStory":      orDefault(a.FunnyStory, "that time we laughed until we cried"),
		"occupation":      orDefault(a.Occupation, "chasing dreams"),
		"petPeeve":        orDefault(a.PetPeeve, "slow walkers"),
		"importantPeople": orDefault(a.ImportantPeople, "everyone who loves you"),
		"sharedMemory":    orDefault(a.SharedMemory, "all the good times"),
		"message":         orDefault(a.DesiredMessage, "Happy birthday, today is all about you"),
	}
}

// Render substitutes {{token}} placeholders. Unknown tokens render empty and
// a template with an unterminated tag is returned as is. The output depends
// only on the template and the answers.
func Render(template string, answers Answers) string {
	values := answers.Values()
	out, err := fasttemplate.ExecuteFuncStringWithErr(template, tagStart, tagEnd, func(w io.Writer, tag string) (int, error) {
		return io.WriteString(w, values[strings.TrimSpace(tag)])
	})
	if err != nil {
		return template
	}
	return out
}

// LyricsDraft is one generated variation before it is persisted.
type LyricsDraft struct {
	Model   string
	Style   string
	Content string
}

// GenerateLyrics renders one draft per verse template of the style, each
// closed with the chorus of the requested tone.
func GenerateLyrics(style, tone string, answers Answers) ([]LyricsDraft, error) {
	templates, err := LyricsTemplates(style, tone)
	if err != nil {
		return nil, err
	}

	drafts := make([]LyricsDraft, 0, len(templates))
	for _, tpl := range templates {
		drafts = append(drafts, LyricsDraft{
			Model:   LyricsModel,
			Style:   style,
			Content: Render(tpl, answers),
		})
	}
	return drafts, nil
}

// LyricsTemplates returns the full templates for a style and tone. An unknown
// tone falls back to heartfelt; an unknown style is an error.
func LyricsTemplates(style, tone string) ([]string, error) {
	verses, ok := verseTemplates[style]
	if !ok {
		return nil, fmt.Errorf("unknown style %q", style)
	}
	chorus, ok := chorusTemplates[tone]
	if !ok {
		chorus = chorusTemplates[DefaultTone]
	}

	out := make([]string, len(verses))
	for i, verse := range verses {
		out[i] = verse + "\n\n" + chorus
	}
	return out, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}

func pick(list []string, i int, def string) string {
	if i < len(list) {
		return orDefault(list[i], def)
	}
	return def
}
