package service

import (
	"sort"

	"github.com/x2002uwh/SurveyBundle/internal/domain/entity"
	"github.com/x2002uwh/SurveyBundle/internal/domain/repository"
	apperrors "github.com/x2002uwh/SurveyBundle/internal/pkg/errors"
)

// Репозитории в памяти для тестирования сервисов без базы данных.

type memSurveyRepo struct {
	surveys   map[uint]*entity.Survey
	relations map[uint]*entity.SurveyQuestionRelation
	nextID    uint
}

func newMemSurveyRepo() *memSurveyRepo {
	return &memSurveyRepo{
		surveys:   make(map[uint]*entity.Survey),
		relations: make(map[uint]*entity.SurveyQuestionRelation),
		nextID:    1,
	}
}

func (r *memSurveyRepo) id() uint {
	id := r.nextID
	r.nextID++
	return id
}

func (r *memSurveyRepo) GetByID(id uint) (*entity.Survey, error) {
	survey, ok := r.surveys[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *survey
	return &copied, nil
}

func (r *memSurveyRepo) GetByShareToken(token string) (*entity.Survey, error) {
	if token == "" {
		return nil, apperrors.ErrNotFound
	}
	for _, survey := range r.surveys {
		if survey.ResultShareToken == token {
			copied := *survey
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memSurveyRepo) GetByOwner(ownerID uint) ([]entity.Survey, error) {
	var surveys []entity.Survey
	for _, survey := range r.surveys {
		if survey.OwnerID == ownerID {
			surveys = append(surveys, *survey)
		}
	}
	sort.Slice(surveys, func(i, j int) bool { return surveys[i].ID < surveys[j].ID })
	return surveys, nil
}

func (r *memSurveyRepo) Create(survey *entity.Survey) error {
	survey.ID = r.id()
	copied := *survey
	r.surveys[survey.ID] = &copied
	return nil
}

func (r *memSurveyRepo) Save(survey *entity.Survey) error {
	copied := *survey
	r.surveys[survey.ID] = &copied
	return nil
}

func (r *memSurveyRepo) Delete(id uint) error {
	delete(r.surveys, id)
	for relID, rel := range r.relations {
		if rel.SurveyID == id {
			delete(r.relations, relID)
		}
	}
	return nil
}

func (r *memSurveyRepo) GetRelations(surveyID uint) ([]entity.SurveyQuestionRelation, error) {
	var relations []entity.SurveyQuestionRelation
	for _, rel := range r.relations {
		if rel.SurveyID == surveyID {
			relations = append(relations, *rel)
		}
	}
	sort.Slice(relations, func(i, j int) bool {
		if relations[i].Position != relations[j].Position {
			return relations[i].Position < relations[j].Position
		}
		return relations[i].ID < relations[j].ID
	})
	return relations, nil
}

func (r *memSurveyRepo) GetRelation(id uint) (*entity.SurveyQuestionRelation, error) {
	rel, ok := r.relations[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *rel
	return &copied, nil
}

func (r *memSurveyRepo) CreateRelation(relation *entity.SurveyQuestionRelation) error {
	relation.ID = r.id()
	copied := *relation
	r.relations[relation.ID] = &copied
	return nil
}

func (r *memSurveyRepo) SaveRelation(relation *entity.SurveyQuestionRelation) error {
	copied := *relation
	r.relations[relation.ID] = &copied
	return nil
}

func (r *memSurveyRepo) DeleteRelation(surveyID, questionID uint) error {
	for relID, rel := range r.relations {
		if rel.SurveyID == surveyID && rel.QuestionID == questionID {
			delete(r.relations, relID)
		}
	}
	return nil
}

type memQuestionRepo struct {
	questions   map[uint]*entity.Question
	definitions map[uint]*entity.MultipleChoiceQuestion
	choices     map[uint][]entity.Choice
	nextID      uint
}

func newMemQuestionRepo() *memQuestionRepo {
	return &memQuestionRepo{
		questions:   make(map[uint]*entity.Question),
		definitions: make(map[uint]*entity.MultipleChoiceQuestion),
		choices:     make(map[uint][]entity.Choice),
		nextID:      1,
	}
}

func (r *memQuestionRepo) id() uint {
	id := r.nextID
	r.nextID++
	return id
}

func (r *memQuestionRepo) GetByID(id uint) (*entity.Question, error) {
	question, ok := r.questions[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *question
	return &copied, nil
}

func (r *memQuestionRepo) GetByWorkspace(workspaceID uint) ([]entity.Question, error) {
	var questions []entity.Question
	for _, question := range r.questions {
		if question.WorkspaceID == workspaceID {
			questions = append(questions, *question)
		}
	}
	sort.Slice(questions, func(i, j int) bool { return questions[i].ID < questions[j].ID })
	return questions, nil
}

func (r *memQuestionRepo) Create(question *entity.Question) error {
	question.ID = r.id()
	copied := *question
	r.questions[question.ID] = &copied
	return nil
}

func (r *memQuestionRepo) Update(question *entity.Question) error {
	copied := *question
	r.questions[question.ID] = &copied
	return nil
}

func (r *memQuestionRepo) Delete(id uint) error {
	delete(r.questions, id)
	delete(r.definitions, id)
	delete(r.choices, id)
	return nil
}

func (r *memQuestionRepo) GetChoiceQuestion(questionID uint) (*entity.MultipleChoiceQuestion, error) {
	mcq, ok := r.definitions[questionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *mcq
	return &copied, nil
}

func (r *memQuestionRepo) CreateChoiceQuestion(mcq *entity.MultipleChoiceQuestion) error {
	mcq.ID = r.id()
	copied := *mcq
	r.definitions[mcq.QuestionID] = &copied
	return nil
}

func (r *memQuestionRepo) SaveChoiceQuestion(mcq *entity.MultipleChoiceQuestion) error {
	copied := *mcq
	r.definitions[mcq.QuestionID] = &copied
	return nil
}

func (r *memQuestionRepo) GetChoices(questionID uint) ([]entity.Choice, error) {
	return append([]entity.Choice(nil), r.choices[questionID]...), nil
}

func (r *memQuestionRepo) ReplaceChoices(questionID uint, choices []entity.Choice) error {
	for i := range choices {
		if choices[i].ID == 0 {
			choices[i].ID = r.id()
		}
	}
	r.choices[questionID] = append([]entity.Choice(nil), choices...)
	return nil
}

type memAnswerRepo struct {
	surveyAnswers   map[uint]*entity.SurveyAnswer
	questionAnswers map[uint]*entity.QuestionAnswer
	openEnded       map[uint]*entity.OpenEndedQuestionAnswer
	selected        []entity.MultipleChoiceQuestionAnswer
	nextID          uint
}

func newMemAnswerRepo() *memAnswerRepo {
	return &memAnswerRepo{
		surveyAnswers:   make(map[uint]*entity.SurveyAnswer),
		questionAnswers: make(map[uint]*entity.QuestionAnswer),
		openEnded:       make(map[uint]*entity.OpenEndedQuestionAnswer),
		nextID:          1,
	}
}

func (r *memAnswerRepo) id() uint {
	id := r.nextID
	r.nextID++
	return id
}

func (r *memAnswerRepo) GetSurveyAnswer(surveyID, userID uint) (*entity.SurveyAnswer, error) {
	for _, answer := range r.surveyAnswers {
		if answer.SurveyID == surveyID && answer.UserID == userID {
			copied := *answer
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memAnswerRepo) CreateSurveyAnswer(answer *entity.SurveyAnswer) error {
	answer.ID = r.id()
	copied := *answer
	r.surveyAnswers[answer.ID] = &copied
	return nil
}

func (r *memAnswerRepo) SaveSurveyAnswer(answer *entity.SurveyAnswer) error {
	copied := *answer
	r.surveyAnswers[answer.ID] = &copied
	return nil
}

func (r *memAnswerRepo) GetQuestionAnswer(surveyAnswerID, questionID uint) (*entity.QuestionAnswer, error) {
	for _, answer := range r.questionAnswers {
		if answer.SurveyAnswerID == surveyAnswerID && answer.QuestionID == questionID {
			copied := *answer
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memAnswerRepo) CreateQuestionAnswer(answer *entity.QuestionAnswer) error {
	answer.ID = r.id()
	copied := *answer
	r.questionAnswers[answer.ID] = &copied
	return nil
}

func (r *memAnswerRepo) SaveQuestionAnswer(answer *entity.QuestionAnswer) error {
	copied := *answer
	r.questionAnswers[answer.ID] = &copied
	return nil
}

func (r *memAnswerRepo) GetOpenEndedAnswer(questionAnswerID uint) (*entity.OpenEndedQuestionAnswer, error) {
	answer, ok := r.openEnded[questionAnswerID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *answer
	return &copied, nil
}

func (r *memAnswerRepo) CreateOpenEndedAnswer(answer *entity.OpenEndedQuestionAnswer) error {
	answer.ID = r.id()
	copied := *answer
	r.openEnded[answer.QuestionAnswerID] = &copied
	return nil
}

func (r *memAnswerRepo) SaveOpenEndedAnswer(answer *entity.OpenEndedQuestionAnswer) error {
	copied := *answer
	r.openEnded[answer.QuestionAnswerID] = &copied
	return nil
}

func (r *memAnswerRepo) GetSelectedChoices(questionAnswerID uint) ([]entity.MultipleChoiceQuestionAnswer, error) {
	var selected []entity.MultipleChoiceQuestionAnswer
	for _, sel := range r.selected {
		if sel.QuestionAnswerID == questionAnswerID {
			selected = append(selected, sel)
		}
	}
	return selected, nil
}

func (r *memAnswerRepo) ReplaceSelectedChoices(questionAnswerID uint, choiceIDs []uint) error {
	kept := r.selected[:0]
	for _, sel := range r.selected {
		if sel.QuestionAnswerID != questionAnswerID {
			kept = append(kept, sel)
		}
	}
	r.selected = kept
	for _, choiceID := range choiceIDs {
		r.selected = append(r.selected, entity.MultipleChoiceQuestionAnswer{
			ID:               r.id(),
			QuestionAnswerID: questionAnswerID,
			ChoiceID:         choiceID,
		})
	}
	return nil
}

func (r *memAnswerRepo) CountQuestionAnswers(surveyID, questionID uint) (int64, error) {
	var count int64
	for _, qa := range r.questionAnswers {
		sa, ok := r.surveyAnswers[qa.SurveyAnswerID]
		if ok && sa.SurveyID == surveyID && qa.QuestionID == questionID {
			count++
		}
	}
	return count, nil
}

func (r *memAnswerRepo) CountChoiceAnswers(surveyID, choiceID uint) (int64, error) {
	var count int64
	for _, sel := range r.selected {
		if sel.ChoiceID != choiceID {
			continue
		}
		qa, ok := r.questionAnswers[sel.QuestionAnswerID]
		if !ok {
			continue
		}
		sa, ok := r.surveyAnswers[qa.SurveyAnswerID]
		if ok && sa.SurveyID == surveyID {
			count++
		}
	}
	return count, nil
}

func (r *memAnswerRepo) ListOpenEndedAnswers(surveyID, questionID uint, page, pageSize int) ([]entity.OpenEndedQuestionAnswer, error) {
	var answers []entity.OpenEndedQuestionAnswer
	for _, answer := range r.openEnded {
		qa, ok := r.questionAnswers[answer.QuestionAnswerID]
		if !ok || qa.QuestionID != questionID {
			continue
		}
		sa, ok := r.surveyAnswers[qa.SurveyAnswerID]
		if ok && sa.SurveyID == surveyID {
			answers = append(answers, *answer)
		}
	}
	sort.Slice(answers, func(i, j int) bool { return answers[i].ID < answers[j].ID })

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	start := (page - 1) * pageSize
	if start >= len(answers) {
		return nil, nil
	}
	end := start + pageSize
	if end > len(answers) {
		end = len(answers)
	}
	return answers[start:end], nil
}

func (r *memAnswerRepo) InTransaction(fn func(tx repository.AnswerRepository) error) error {
	return fn(r)
}
