package services

import (
	"strings"
	"sync"
	"time"

	"github.com/kljensen/snowball"

	"ttsguard/database"
	apperrors "ttsguard/server/errors"
)

// ComplaintService сервис работы с обращениями клиентов
type ComplaintService struct {
	db      *database.DB
	stemmer *messageStemmer
}

// NewComplaintService создает сервис обращений
func NewComplaintService(db *database.DB) *ComplaintService {
	return &ComplaintService{
		db:      db,
		stemmer: newMessageStemmer(),
	}
}

// CreateComplaintRequest данные нового обращения
type CreateComplaintRequest struct {
	ClientID           int    `json:"client_id" binding:"required"`
	BuildingID         int    `json:"building_id" binding:"required"`
	Message            string `json:"message" binding:"required"`
	Priority           string `json:"priority"`
	AssignedTechnician string `json:"assigned_technician"`
	InspectionID       *int   `json:"inspection_id"`
}

// UpdateComplaintRequest смена статуса обращения
type UpdateComplaintRequest struct {
	Status             string `json:"status" binding:"required"`
	AssignedTechnician string `json:"assigned_technician"`
}

// Create регистрирует обращение и выдает ему номер тикета
func (s *ComplaintService) Create(req CreateComplaintRequest) (*database.Complaint, error) {
	complaint, err := s.db.InsertComplaint(req.ClientID, req.BuildingID, req.Message,
		req.Priority, req.AssignedTechnician, req.InspectionID)
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to create complaint")
	}
	return complaint, nil
}

// Get возвращает обращение по ID
func (s *ComplaintService) Get(id int) (*database.Complaint, error) {
	complaint, err := s.db.GetComplaint(id)
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to get complaint")
	}
	return complaint, nil
}

// GetByTicket возвращает обращение по номеру тикета
func (s *ComplaintService) GetByTicket(ticketNumber string) (*database.Complaint, error) {
	complaint, err := s.db.GetComplaintByTicket(ticketNumber)
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to get complaint by ticket")
	}
	return complaint, nil
}

// List возвращает все обращения, свежие первыми
func (s *ComplaintService) List() ([]*database.ComplaintWithBuilding, error) {
	complaints, err := s.db.GetAllComplaints()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list complaints", err)
	}
	return complaints, nil
}

// ByMonth возвращает обращения за календарный месяц
func (s *ComplaintService) ByMonth(year int, month time.Month) ([]*database.ComplaintWithBuilding, error) {
	complaints, err := s.db.GetComplaintsByMonth(year, month)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list complaints by month", err)
	}
	return complaints, nil
}

// UpdateStatusпереводит тикет по воронке open -> assigned -> in_progress -> resolved
func (s *ComplaintService) UpdateStatus(id int, req UpdateComplaintRequest) (*database.Complaint, error) {
	if err := s.db.UpdateComplaintStatus(id, req.Status, req.AssignedTechnician); err != nil {
		return nil, apperrors.WrapError(err, "failed to update complaint")
	}
	return s.Get(id)
}

// Search ищет обращения по тексту со стеммингом: запрос "detectors failing"
// находит "detector failed". Все термы запроса должны встретиться в сообщении
func (s *ComplaintService) Search(query string) ([]*database.ComplaintWithBuilding, error) {
	terms := s.stemmer.StemTokens(tokenize(query))
	if len(terms) == 0 {
		return nil, apperrors.NewValidationError("search query is empty", nil)
	}

	complaints, err := s.db.GetAllComplaints()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to search complaints", err)
	}

	var matched []*database.ComplaintWithBuilding
	for _, c := range complaints {
		messageStems := make(map[string]bool)
		for _, stem := range s.stemmer.StemTokens(tokenize(c.Message)) {
			messageStems[stem] = true
		}

		allFound := true
		for _, term := range terms {
			if !messageStems[term] {
				allFound = false
				break
			}
		}
		if allFound {
			matched = append(matched, c)
		}
	}

	return matched, nil
}

// messageStemmer стеммер английских сообщений с кэшем
type messageStemmer struct {
	cache map[string]string
	mu    sync.RWMutex
}

func newMessageStemmer() *messageStemmer {
	return &messageStemmer{cache: make(map[string]string)}
}

// Stem возвращает основу слова по алгоритму Snowball
func (s *messageStemmer) Stem(word string) string {
	normalized := strings.ToLower(strings.TrimSpace(word))
	if normalized == "" {
		return ""
	}

	s.mu.RLock()
	cached, ok := s.cache[normalized]
	s.mu.RUnlock()
	if ok {
		return cached
	}

	stemmed, err := snowball.Stem(normalized, "english", true)
	if err != nil {
		stemmed = normalized
	}

	s.mu.Lock()
	s.cache[normalized] = stemmed
	s.mu.Unlock()

	return stemmed
}

// StemTokens возвращает основы для набора слов
func (s *messageStemmer) StemTokens(tokens []string) []string {
	stems := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if stem := s.Stem(token); stem != "" {
			stems = append(stems, stem)
		}
	}
	return stems
}

// tokenize разбивает текст на слова, отбрасывая пунктуацию
func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return false
		default:
			return true
		}
	})
}
