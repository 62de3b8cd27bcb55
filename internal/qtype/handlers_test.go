package qtype

import (
	"reflect"
	"testing"

	"github.com/x2002uwh/SurveyBundle/internal/domain/entity"
	apperrors "github.com/x2002uwh/SurveyBundle/internal/pkg/errors"
)

// fakeStore - AnswerStore в памяти для проверки обработчиков
type fakeStore struct {
	openEnded map[uint]*entity.OpenEndedQuestionAnswer
	selected  map[uint][]uint
	nextID    uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		openEnded: make(map[uint]*entity.OpenEndedQuestionAnswer),
		selected:  make(map[uint][]uint),
		nextID:    1,
	}
}

func (s *fakeStore) GetOpenEndedAnswer(questionAnswerID uint) (*entity.OpenEndedQuestionAnswer, error) {
	answer, ok := s.openEnded[questionAnswerID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *answer
	return &copied, nil
}

func (s *fakeStore) CreateOpenEndedAnswer(answer *entity.OpenEndedQuestionAnswer) error {
	answer.ID = s.nextID
	s.nextID++
	copied := *answer
	s.openEnded[answer.QuestionAnswerID] = &copied
	return nil
}

func (s *fakeStore) SaveOpenEndedAnswer(answer *entity.OpenEndedQuestionAnswer) error {
	copied := *answer
	s.openEnded[answer.QuestionAnswerID] = &copied
	return nil
}

func (s *fakeStore) ReplaceSelectedChoices(questionAnswerID uint, choiceIDs []uint) error {
	s.selected[questionAnswerID] = append([]uint(nil), choiceIDs...)
	return nil
}

// fakeChoiceSource - ChoiceSource в памяти
type fakeChoiceSource struct {
	definitions map[uint]*entity.MultipleChoiceQuestion
	choices     map[uint][]entity.Choice
}

func newFakeChoiceSource() *fakeChoiceSource {
	return &fakeChoiceSource{
		definitions: make(map[uint]*entity.MultipleChoiceQuestion),
		choices:     make(map[uint][]entity.Choice),
	}
}

func (s *fakeChoiceSource) GetChoiceQuestion(questionID uint) (*entity.MultipleChoiceQuestion, error) {
	mcq, ok := s.definitions[questionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return mcq, nil
}

func (s *fakeChoiceSource) GetChoices(questionID uint) ([]entity.Choice, error) {
	return s.choices[questionID], nil
}

// fakeResultsSource - ResultsSource с заранее подготовленными данными
type fakeResultsSource struct {
	respondents  int64
	choiceCounts map[uint]int64
	openAnswers  []entity.OpenEndedQuestionAnswer
}

func (s *fakeResultsSource) CountQuestionAnswers(surveyID, questionID uint) (int64, error) {
	return s.respondents, nil
}

func (s *fakeResultsSource) CountChoiceAnswers(surveyID, choiceID uint) (int64, error) {
	return s.choiceCounts[choiceID], nil
}

func (s *fakeResultsSource) ListOpenEndedAnswers(surveyID, questionID uint, page, pageSize int) ([]entity.OpenEndedQuestionAnswer, error) {
	start := (page - 1) * pageSize
	if start >= len(s.openAnswers) {
		return nil, nil
	}
	end := start + pageSize
	if end > len(s.openAnswers) {
		end = len(s.openAnswers)
	}
	return s.openAnswers[start:end], nil
}

func TestOpenEndedRegisterAnswer(t *testing.T) {
	h := NewOpenEndedHandler()
	qa := &entity.QuestionAnswer{ID: 10, QuestionID: 1}

	t.Run("empty content creates nothing", func(t *testing.T) {
		store := newFakeStore()
		if err := h.RegisterAnswer(store, qa, Response{"answer": ""}, true); err != nil {
			t.Fatalf("RegisterAnswer() error = %v", err)
		}
		if len(store.openEnded) != 0 {
			t.Error("пустой текст создал запись")
		}
	})

	t.Run("edit overwrites content", func(t *testing.T) {
		store := newFakeStore()
		if err := h.RegisterAnswer(store, qa, Response{"answer": "first"}, true); err != nil {
			t.Fatalf("RegisterAnswer() error = %v", err)
		}
		if err := h.RegisterAnswer(store, qa, Response{"answer": "second"}, false); err != nil {
			t.Fatalf("RegisterAnswer() error = %v", err)
		}

		answer := store.openEnded[qa.ID]
		if answer == nil || answer.Content != "second" {
			t.Errorf("content = %v, want %q", answer, "second")
		}
		if len(store.openEnded) != 1 {
			t.Errorf("записей = %d, want 1", len(store.openEnded))
		}
	})
}

func TestSingleChoiceRegisterAnswer(t *testing.T) {
	source := newFakeChoiceSource()
	source.definitions[1] = &entity.MultipleChoiceQuestion{ID: 1, QuestionID: 1}
	h := NewSingleChoiceHandler(source)
	qa := &entity.QuestionAnswer{ID: 10, QuestionID: 1}

	t.Run("records one choice", func(t *testing.T) {
		store := newFakeStore()
		if err := h.RegisterAnswer(store, qa, Response{"choice": "5"}, true); err != nil {
			t.Fatalf("RegisterAnswer() error = %v", err)
		}
		if !reflect.DeepEqual(store.selected[qa.ID], []uint{5}) {
			t.Errorf("selected = %v, want [5]", store.selected[qa.ID])
		}
	})

	t.Run("missing definition is skipped silently", func(t *testing.T) {
		store := newFakeStore()
		orphan := &entity.QuestionAnswer{ID: 11, QuestionID: 99}
		if err := h.RegisterAnswer(store, orphan, Response{"choice": "5"}, true); err != nil {
			t.Fatalf("RegisterAnswer() error = %v", err)
		}
		if len(store.selected) != 0 {
			t.Error("выбор записан без определения вопроса")
		}
	})
}

func TestMultiChoiceRegisterAnswer(t *testing.T) {
	source := newFakeChoiceSource()
	source.definitions[1] = &entity.MultipleChoiceQuestion{ID: 1, QuestionID: 1}
	h := NewMultiChoiceHandler(source)
	qa := &entity.QuestionAnswer{ID: 10, QuestionID: 1}

	t.Run("edit replaces whole set", func(t *testing.T) {
		store := newFakeStore()
		if err := h.RegisterAnswer(store, qa, Response{"1": "1", "2": "1"}, true); err != nil {
			t.Fatalf("RegisterAnswer() error = %v", err)
		}
		if err := h.RegisterAnswer(store, qa, Response{"3": "1"}, false); err != nil {
			t.Fatalf("RegisterAnswer() error = %v", err)
		}
		if !reflect.DeepEqual(store.selected[qa.ID], []uint{3}) {
			t.Errorf("selected = %v, want [3]", store.selected[qa.ID])
		}
	})

	t.Run("comment-only edit keeps selections", func(t *testing.T) {
		store := newFakeStore()
		if err := h.RegisterAnswer(store, qa, Response{"1": "1", "2": "1"}, true); err != nil {
			t.Fatalf("RegisterAnswer() error = %v", err)
		}
		if err := h.RegisterAnswer(store, qa, Response{"comment": "just a note"}, false); err != nil {
			t.Fatalf("RegisterAnswer() error = %v", err)
		}
		if !reflect.DeepEqual(store.selected[qa.ID], []uint{1, 2}) {
			t.Errorf("selected = %v, want [1 2]", store.selected[qa.ID])
		}
	})
}

func TestChoiceResultsCounts(t *testing.T) {
	source := newFakeChoiceSource()
	source.definitions[1] = &entity.MultipleChoiceQuestion{ID: 1, QuestionID: 1}
	source.choices[1] = []entity.Choice{
		{ID: 1, QuestionID: 1, Content: "Да"},
		{ID: 2, QuestionID: 1, Content: "Нет"},
	}
	h := NewSingleChoiceHandler(source)
	survey := &entity.Survey{ID: 1}
	question := &entity.Question{ID: 1, Type: entity.TypeSingleChoice}

	t.Run("zero respondents leave counts empty", func(t *testing.T) {
		src := &fakeResultsSource{respondents: 0}
		view, err := h.Results(src, survey, question, 1, 20)
		if err != nil {
			t.Fatalf("Results() error = %v", err)
		}
		if len(view.Counts) != 0 {
			t.Errorf("Counts = %v, want empty", view.Counts)
		}
		if len(view.Choices) != 2 {
			t.Errorf("Choices = %d, want 2", len(view.Choices))
		}
	})

	t.Run("counts per choice", func(t *testing.T) {
		src := &fakeResultsSource{respondents: 3, choiceCounts: map[uint]int64{1: 2, 2: 1}}
		view, err := h.Results(src, survey, question, 1, 20)
		if err != nil {
			t.Fatalf("Results() error = %v", err)
		}
		if view.Respondents != 3 {
			t.Errorf("Respondents = %d, want 3", view.Respondents)
		}
		if view.Counts[1] != 2 || view.Counts[2] != 1 {
			t.Errorf("Counts = %v, want map[1:2 2:1]", view.Counts)
		}
	})
}

func TestOpenEndedResultsPagination(t *testing.T) {
	h := NewOpenEndedHandler()
	survey := &entity.Survey{ID: 1}
	question := &entity.Question{ID: 1, Type: entity.TypeOpenEnded}
	src := &fakeResultsSource{
		respondents: 3,
		openAnswers: []entity.OpenEndedQuestionAnswer{
			{ID: 1, Content: "alpha"},
			{ID: 2, Content: "beta"},
			{ID: 3, Content: "gamma"},
		},
	}

	view, err := h.Results(src, survey, question, 2, 1)
	if err != nil {
		t.Fatalf("Results() error = %v", err)
	}
	if !reflect.DeepEqual(view.OpenAnswers, []string{"beta"}) {
		t.Errorf("OpenAnswers = %v, want [beta]", view.OpenAnswers)
	}
	if view.Page != 2 || view.PageSize != 1 {
		t.Errorf("page = %d/%d, want 2/1", view.Page, view.PageSize)
	}

	t.Run("defaults applied", func(t *testing.T) {
		view, err := h.Results(src, survey, question, 0, 0)
		if err != nil {
			t.Fatalf("Results() error = %v", err)
		}
		if view.Page != DefaultResultsPage || view.PageSize != DefaultResultsPageSize {
			t.Errorf("page = %d/%d, want defaults %d/%d",
				view.Page, view.PageSize, DefaultResultsPage, DefaultResultsPageSize)
		}
	})
}
