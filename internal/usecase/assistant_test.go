package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =====================================================
// AnalyzeIntent Tests
// =====================================================

func TestAnalyzeIntent(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Intent
	}{
		{
			name: "full request",
			text: "Хочу из Москвы в Сочи на выходные, на море",
			want: Intent{From: "Москвы", To: "Сочи", When: "на ближайшие выходные", Mood: MoodSea},
		},
		{
			name: "multi-word city",
			text: "Летим из Нижний Тагил в Великие Луки",
			want: Intent{From: "Нижний Тагил", To: "Великие Луки"},
		},
		{
			name: "preposition at sentence start",
			text: "Из Казани куда-нибудь в горы",
			want: Intent{From: "Казани", Mood: MoodMountains},
		},
		{
			name: "anywhere suppresses destination",
			text: "из Москвы куда-нибудь в Европу",
			want: Intent{From: "Москвы"},
		},
		{
			name: "preposition inside a word is ignored",
			text: "Кофевиз Москвы",
			want: Intent{},
		},
		{
			name: "lowercase names are not places",
			text: "из москвы в июне",
			want: Intent{When: "в июне"},
		},
		{
			name: "train",
			text: "поехать на поезде",
			want: Intent{Transport: TransportTrain},
		},
		{
			name: "plane",
			text: "авиабилеты завтра",
			want: Intent{Transport: TransportPlane, When: "завтра"},
		},
		{
			name: "bus",
			text: "на автобусе на неделю",
			want: Intent{Transport: TransportBus, When: "на неделю"},
		},
		{
			name: "no plane wins over plane",
			text: "только без самолёта",
			want: Intent{Transport: TransportNoPlane},
		},
		{
			name: "northern lights needs both words",
			text: "хочу увидеть северное сияние",
			want: Intent{Mood: MoodNorthernLights},
		},
		{
			name: "baikal is the most specific mood",
			text: "море или Байкал",
			want: Intent{Mood: MoodBaikal},
		},
		{
			name: "city break",
			text: "погулять по городу в мае",
			want: Intent{Mood: MoodCity, When: "в мае"},
		},
		{
			name: "nothing recognised",
			text: "привет",
			want: Intent{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AnalyzeIntent(tt.text))
		})
	}
}

// =====================================================
// Step Tests
// =====================================================

func TestStep_FullRequestGoesToSummary(t *testing.T) {
	reply := Step(NewConversation(), "Хочу из Москвы в Сочи на выходные")

	assert.Equal(t, StepSummary, reply.Conversation.Step)
	require.NotNil(t, reply.Search)
	assert.Equal(t, "Москвы", reply.Search.From)
	assert.Equal(t, "Сочи", reply.Search.To)
	assert.Nil(t, reply.Ideas)
	assert.Equal(t, []string{"Хочу из Москвы в Сочи на выходные"}, reply.Conversation.Inputs)
}

func TestStep_Dialogue(t *testing.T) {
	conv := NewConversation()

	reply := Step(conv, "хочу на море")
	assert.Equal(t, StepClarifyFrom, reply.Conversation.Step)
	assert.Equal(t, 1, reply.Conversation.AskFromAttempts)
	assert.Empty(t, reply.Options)

	reply = Step(reply.Conversation, "Из Казани")
	assert.Equal(t, StepClarifyDates, reply.Conversation.Step)
	assert.Len(t, reply.Options, 3)

	reply = Step(reply.Conversation, "в июне")
	assert.Equal(t, StepSummary, reply.Conversation.Step)
	require.NotNil(t, reply.Ideas)
	assert.Equal(t, IdeasRequest{From: "Казани", When: "в июне", Mood: MoodSea}, *reply.Ideas)
	assert.Len(t, reply.Conversation.Inputs, 3)
}

func TestStep_AsksForDestinationOrMood(t *testing.T) {
	reply := Step(NewConversation(), "из Москвы")

	assert.Equal(t, StepClarifyToOrMood, reply.Conversation.Step)
	assert.Len(t, reply.Options, 4)
}

func TestStep_MoscowHint(t *testing.T) {
	reply := Step(NewConversation(), "что-нибудь недалеко от москвы")

	assert.Equal(t, StepClarifyFrom, reply.Conversation.Step)
	assert.Equal(t, []string{"Из Москвы"}, reply.Options)
}

func TestStep_GivesUpOnOriginAfterTwoAttempts(t *testing.T) {
	conv := NewConversation()
	for i := 0; i < maxAskFromAttempts; i++ {
		reply := Step(conv, "не знаю")
		require.Equal(t, StepClarifyFrom, reply.Conversation.Step)
		conv = reply.Conversation
	}

	reply := Step(conv, "всё ещё не знаю")
	assert.Equal(t, StepSummary, reply.Conversation.Step)
	assert.Equal(t, maxAskFromAttempts+1, reply.Conversation.AskFromAttempts)
	require.NotNil(t, reply.Search)
	assert.Nil(t, reply.Ideas)
}

func TestStep_MergeKeepsFirstPlacesAndLatestMood(t *testing.T) {
	reply := Step(NewConversation(), "из Москвы в Сочи, море")
	reply = Step(reply.Conversation, "нет, лучше из Казани в горы")

	intent := reply.Conversation.Intent
	assert.Equal(t, "Москвы", intent.From)
	assert.Equal(t, "Сочи", intent.To)
	assert.Equal(t, MoodMountains, intent.Mood)
}

func TestStep_BlankInputRepeatsQuestion(t *testing.T) {
	first := Step(NewConversation(), "хочу на море")

	again := Step(first.Conversation, "   ")

	assert.Equal(t, first.Conversation, again.Conversation)
	assert.Equal(t, first.Question, again.Question)
}

func TestStep_ZeroConversationStartsInitial(t *testing.T) {
	reply := Step(Conversation{}, "")

	assert.Equal(t, StepInitial, reply.Conversation.Step)
	assert.NotEmpty(t, reply.Question)
	assert.NotNil(t, reply.Options)
}

func TestStep_DoesNotAliasInputs(t *testing.T) {
	base := Conversation{Step: StepClarifyFrom, Inputs: make([]string, 1, 4)}
	base.Inputs[0] = "first"

	a := Step(base, "из Москвы")
	b := Step(base, "из Казани")

	assert.Equal(t, "из Москвы", a.Conversation.Inputs[1])
	assert.Equal(t, "из Казани", b.Conversation.Inputs[1])
}

// =====================================================
// Encoding Tests
// =====================================================

func TestIntentValues(t *testing.T) {
	v := Intent{From: "Москва", To: "Сочи", Mood: MoodSea}.Values()

	assert.Equal(t, "Москва", v.Get("from"))
	assert.Equal(t, "Сочи", v.Get("to"))
	assert.Equal(t, MoodSea, v.Get("mood"))
	assert.False(t, v.Has("when"))
	assert.False(t, v.Has("transport"))
}

func TestIdeasRequestValues(t *testing.T) {
	assert.Equal(t, "mood=any", IdeasRequest{}.Values().Encode())
	assert.Equal(t, "baikal", IdeasRequest{From: "Иркутск", Mood: MoodBaikal}.Values().Get("mood"))
}
