package database

import "time"

// Client клиент — управляющая компания или владелец зданий
type Client struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	ShortName     string `json:"short_name"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
}

// Building здание клиента, объект обслуживания
type Building struct {
	ID       int    `json:"id"`
	ClientID int    `json:"client_id"`
	Name     string `json:"name"`
	Area     string `json:"area"`
}

// Contract договор годового обслуживания (AMC) по зданию.
// По зданию может быть не более одного договора со статусом active —
// инвариант поддерживается запросами, а не ограничением схемы.
type Contract struct {
	ID            int     `json:"id"`
	BuildingID    int     `json:"building_id"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	VisitsPerYear int     `json:"visits_per_year"`
	AnnualValue   float64 `json:"annual_value"`
	PaymentTerms  string  `json:"payment_terms"`
	Status        string  `json:"status"`
}

// Equipment единица противопожарного оборудования в здании
type Equipment struct {
	ID         int    `json:"id"`
	BuildingID int    `json:"building_id"`
	Type       string `json:"type"`
	Status     string `json:"status"`
}

// Inspection выполненное обслуживание. Запись неизменяема после создания.
type Inspection struct {
	ID             int       `json:"id"`
	BuildingID     int       `json:"building_id"`
	InspectionDate string    `json:"inspection_date"`
	Technician     string    `json:"technician"`
	ItemsChecked   int       `json:"items_checked"`
	ItemsPassed    int       `json:"items_passed"`
	ItemsFailed    int       `json:"items_failed"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
}

// ScheduledInspection назначенный выезд.
// Пока статус scheduled, здание не попадает в просроченные.
type ScheduledInspection struct {
	ID                 int       `json:"id"`
	BuildingID         int       `json:"building_id"`
	ScheduledDate      string    `json:"scheduled_date"`
	AssignedTechnician string    `json:"assigned_technician"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
}

// Complaint обращение клиента с уникальным номером тикета TTS-<год>-<номер>
type Complaint struct {
	ID                 int       `json:"id"`
	TicketNumber       string    `json:"ticket_number"`
	ClientID           int       `json:"client_id"`
	BuildingID         int       `json:"building_id"`
	Message            string    `json:"message"`
	Priority           string    `json:"priority"`
	Status             string    `json:"status"`
	AssignedTechnician string    `json:"assigned_technician,omitempty"`
	InspectionID       *int      `json:"inspection_id,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// Payment платеж по договору. Запись неизменяема после создания,
// статус (received/pending/overdue/partial) назначается при создании.
type Payment struct {
	ID              int       `json:"id"`
	ContractID      int       `json:"contract_id"`
	PaymentDate     string    `json:"payment_date"`
	Amount          float64   `json:"amount"`
	Method          string    `json:"method"`
	ReferenceNumber string    `json:"reference_number,omitempty"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
