package service

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/x2002uwh/SurveyBundle/internal/domain/entity"
	"github.com/x2002uwh/SurveyBundle/internal/domain/repository"
	"github.com/x2002uwh/SurveyBundle/internal/qtype"
)

// ExportService выгружает результаты опроса в файл XLSX
type ExportService struct {
	surveyRepo   repository.SurveyRepository
	questionRepo repository.QuestionRepository
	results      *ResultsService
}

// NewExportService создает новый сервис выгрузки
func NewExportService(
	surveyRepo repository.SurveyRepository,
	questionRepo repository.QuestionRepository,
	results *ResultsService,
) *ExportService {
	return &ExportService{
		surveyRepo:   surveyRepo,
		questionRepo: questionRepo,
		results:      results,
	}
}

// ExportResults строит XLSX-книгу с результатами опроса: по одному листу
// на вопрос. Для choice-вопросов лист содержит варианты со счетчиками,
// для open_ended - список свободных ответов.
func (s *ExportService) ExportResults(user *entity.User, surveyID uint) ([]byte, string, error) {
	survey, err := s.surveyRepo.GetByID(surveyID)
	if err != nil {
		return nil, "", err
	}

	views, err := s.results.SurveyResults(user, surveyID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, view := range views {
		question, err := s.questionRepo.GetByID(view.QuestionID)
		if err != nil {
			return nil, "", fmt.Errorf("ошибка получения вопроса %d: %w", view.QuestionID, err)
		}

		sheet := fmt.Sprintf("Q%d", i+1)
		if i == 0 {
			f.SetSheetName(f.GetSheetName(0), sheet)
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, "", fmt.Errorf("ошибка создания листа %s: %w", sheet, err)
			}
		}

		if err := s.fillSheet(f, sheet, question, &view); err != nil {
			return nil, "", err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("ошибка записи XLSX: %w", err)
	}

	filename := fmt.Sprintf("survey_%d_results.xlsx", survey.ID)
	return buf.Bytes(), filename, nil
}

func (s *ExportService) fillSheet(f *excelize.File, sheet string, question *entity.Question, view *qtype.ResultsView) error {
	rows := [][]interface{}{
		{"Вопрос", question.Title},
		{"Тип", string(view.Type)},
		{"Респондентов", view.Respondents},
		{},
	}

	if view.Type.IsChoiceType() {
		rows = append(rows, []interface{}{"Вариант", "Выбрали"})
		for _, choice := range view.Choices {
			rows = append(rows, []interface{}{choice.Content, view.Counts[choice.ID]})
		}
	} else {
		rows = append(rows, []interface{}{"Ответы"})
		for _, answer := range view.OpenAnswers {
			rows = append(rows, []interface{}{answer})
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("ошибка адресации ячейки: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("ошибка заполнения листа %s: %w", sheet, err)
		}
	}
	return nil
}
