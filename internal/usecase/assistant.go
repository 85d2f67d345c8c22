package usecase

import (
	"net/url"
	"regexp"
	"strings"
)

// ConversationStep names a state of the guided assistant.
type ConversationStep string

const (
	StepInitial         ConversationStep = "initial"
	StepClarifyFrom     ConversationStep = "clarify_from"
	StepClarifyToOrMood ConversationStep = "clarify_to_or_mood"
	StepClarifyDates    ConversationStep = "clarify_dates"
	StepSummary         ConversationStep = "summary"
)

// maxAskFromAttempts is how many times the origin is asked before giving up on it.
const maxAskFromAttempts = 2

// Transport and mood values extracted from free text.
const (
	TransportTrain   = "train"
	TransportPlane   = "plane"
	TransportBus     = "bus"
	TransportNoPlane = "no_plane"

	MoodSea            = "sea"
	MoodMountains      = "mountains"
	MoodCity           = "city"
	MoodNorthernLights = "northern_lights"
	MoodBaikal         = "baikal"
	MoodAny            = "any"
)

// Intent is what one message says about the trip. Empty fields are unknown.
type Intent struct {
	From      string `json:"from,omitempty"`
	To        string `json:"to,omitempty"`
	When      string `json:"when,omitempty"`
	Mood      string `json:"mood,omitempty"`
	Transport string `json:"transport,omitempty"`
}

// Conversation is the assistant state. The assistant is stateless: clients
// send the conversation back with every message.
type Conversation struct {
	Step            ConversationStep `json:"step"`
	Intent          Intent           `json:"intent"`
	Inputs          []string         `json:"inputs,omitempty"`
	AskFromAttempts int              `json:"askFromAttempts"`
}

// Reply is the assistant's answer to one message.
type Reply struct {
	Conversation Conversation `json:"conversation"`
	Question     string       `json:"question"`
	Options      []string     `json:"options"`

	// Search is set in the summary step: parameters for the search form
	Search *Intent `json:"search,omitempty"`

	// Ideas is set in the summary step when only a mood is known
	Ideas *IdeasRequest `json:"ideas,omitempty"`
}

// IdeasRequest asks for destination ideas matching a mood.
type IdeasRequest struct {
	From string `json:"from,omitempty"`
	When string `json:"when,omitempty"`
	Mood string `json:"mood"`
}

// Values encodes the request as query parameters; the mood defaults to "any".
func (r IdeasRequest) Values() url.Values {
	v := url.Values{}
	if r.From != "" {
		v.Set("from", r.From)
	}
	if r.When != "" {
		v.Set("when", r.When)
	}
	mood := r.Mood
	if mood == "" {
		mood = MoodAny
	}
	v.Set("mood", mood)
	return v
}

// Values encodes the known intent fields as search-form query parameters.
func (i Intent) Values() url.Values {
	v := url.Values{}
	for _, kv := range [][2]string{
		{"from", i.From}, {"to", i.To}, {"when", i.When}, {"mood", i.Mood}, {"transport", i.Transport},
	} {
		if kv[1] != "" {
			v.Set(kv[0], kv[1])
		}
	}
	return v
}

// A capitalized place name, possibly several words ("Нижний Новгород").
const placeNamePattern = `(\p{Lu}\p{Ll}+(?:\s+\p{Lu}\p{Ll}+)*)`

var (
	fromRegex = regexp.MustCompile(`(?:^|[^\p{L}\p{N}])(?i:из)\s+` + placeNamePattern)
	toRegex   = regexp.MustCompile(`(?:^|[^\p{L}\p{N}])(?i:в)\s+` + placeNamePattern)
)

// AnalyzeIntent extracts trip details from Russian free text with keyword rules.
func AnalyzeIntent(text string) Intent {
	var intent Intent
	lower := strings.ToLower(text)
	has := func(subs ...string) bool {
		for _, s := range subs {
			if strings.Contains(lower, s) {
				return true
			}
		}
		return false
	}

	switch {
	case has("без самол"):
		intent.Transport = TransportNoPlane
	case has("поезд", "электричк"):
		intent.Transport = TransportTrain
	case has("самолёт", "самолет", "авиа"):
		intent.Transport = TransportPlane
	case has("автобус"):
		intent.Transport = TransportBus
	}

	// later rules win, so the most specific mood is kept
	if has("море", "пляж") {
		intent.Mood = MoodSea
	}
	if has("горы", "тропы") {
		intent.Mood = MoodMountains
	}
	if has("город") {
		intent.Mood = MoodCity
	}
	if has("северн") && has("сияни") {
		intent.Mood = MoodNorthernLights
	}
	if has("байкал") {
		intent.Mood = MoodBaikal
	}

	if m := fromRegex.FindStringSubmatch(text); m != nil {
		intent.From = strings.TrimSpace(m[1])
	}
	if m := toRegex.FindStringSubmatch(text); m != nil && !has("куда-нибудь", "куда нибудь") {
		intent.To = strings.TrimSpace(m[1])
	}

	switch {
	case has("выходные"):
		intent.When = "на ближайшие выходные"
	case has("май", "в мае"):
		intent.When = "в мае"
	case has("июнь", "в июне", "июня"):
		intent.When = "в июне"
	case has("завтра"):
		intent.When = "завтра"
	case has("на недел"):
		intent.When = "на неделю"
	}

	return intent
}

// merge folds a new intent into the conversation. Transport and mood follow
// the latest message; origin, destination and dates keep the first value.
func (c *Conversation) merge(in Intent) {
	if in.Transport != "" {
		c.Intent.Transport = in.Transport
	}
	if in.Mood != "" {
		c.Intent.Mood = in.Mood
	}
	if c.Intent.From == "" {
		c.Intent.From = in.From
	}
	if c.Intent.To == "" {
		c.Intent.To = in.To
	}
	if c.Intent.When == "" {
		c.Intent.When = in.When
	}
}

// NewConversation returns the initial assistant state.
func NewConversation() Conversation {
	return Conversation{Step: StepInitial}
}

// Step processes one user message. Blank text leaves the state unchanged
// and repeats the current question.
func Step(conv Conversation, text string) Reply {
	if conv.Step == "" {
		conv.Step = StepInitial
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return render(conv)
	}

	conv.Inputs = append(append([]string(nil), conv.Inputs...), text)
	conv.merge(AnalyzeIntent(text))

	switch {
	case conv.Intent.From == "":
		conv.Step = StepClarifyFrom
		conv.AskFromAttempts++
		if conv.AskFromAttempts > maxAskFromAttempts {
			conv.Step = StepSummary
		}
	case conv.Intent.To == "" && conv.Intent.Mood == "":
		conv.Step = StepClarifyToOrMood
	case conv.Intent.When == "":
		conv.Step = StepClarifyDates
	default:
		conv.Step = StepSummary
	}

	return render(conv)
}

func render(conv Conversation) Reply {
	reply := Reply{Conversation: conv, Options: []string{}}

	switch conv.Step {
	case StepInitial, StepClarifyFrom:
		reply.Question = "Приняла запрос, давай зафиксируем точку старта. Из какого города выезжаешь?"
		if n := len(conv.Inputs); n > 0 && strings.Contains(strings.ToLower(conv.Inputs[n-1]), "моск") {
			reply.Options = append(reply.Options, "Из Москвы")
		}
	case StepClarifyToOrMood:
		reply.Question = "Хочу понять направление. Больше тянет к морю, в горы или в города?"
		reply.Options = append(reply.Options, "К морю", "В горы", "По городам", "Сам придумаю, давай просто билеты")
	case StepClarifyDates:
		reply.Question = "На какие даты примерно смотрим эту поездку?"
		reply.Options = append(reply.Options, "На ближайшие выходные", "В этом месяце", "В ближайшие каникулы")
	case StepSummary:
		reply.Question = "Собрала картину поездки. Дальше могу открыть форму поиска или подсказать идеи."
		search := conv.Intent
		reply.Search = &search
		if conv.Intent.To == "" && conv.Intent.Mood != "" {
			reply.Ideas = &IdeasRequest{From: conv.Intent.From, When: conv.Intent.When, Mood: conv.Intent.Mood}
		}
	}
	return reply
}
