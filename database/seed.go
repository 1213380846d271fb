package database

import (
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// demoSeedValue фиксированный seed: демо-данные воспроизводимы от запуска к запуску
const demoSeedValue = 42

// Technicians штатные техники, используются демо-данными и формами назначения
var Technicians = []string{
	"Mohammed Al-Rashid",
	"Suresh Kumar",
	"Ahmed Mansoor",
	"Rajesh Nair",
	"Khalid Ibrahim",
}

// EnsureDemoData засевает демо-данные, если база пуста.
// Вызывается после создания схемы, повторный запуск ничего не делает.
func (db *DB) EnsureDemoData(today time.Time) error {
	hasData, err := db.HasData()
	if err != nil {
		return err
	}
	if hasData {
		// Уже есть реальные данные — оставляем как есть.
		return nil
	}

	log.Println("Database is empty, seeding demo data")
	return db.SeedDemo(today)
}

type demoBuilding struct {
	clientIdx  int // 1-based индекс клиента
	name       string
	area       string
	equipCount int
}

// SeedDemo заполняет базу демо-данными: 8 клиентов, 18 зданий с договорами
// и оборудованием, полгода истории обслуживаний и платежей, 5 обращений.
// Даты задаются смещениями от today, распределение статусов фиксировано:
// 4 здания просрочены, 5 на подходе, 9 обслужены недавно.
func (db *DB) SeedDemo(today time.Time) error {
	faker := gofakeit.New(demoSeedValue)

	clients := []struct {
		name, shortName, contact, phone, email string
	}{
		{"First Abu Dhabi Bank", "FAB", "Ahmad Al-Mazrouei", "+971 2 610 1111", "ahmad.m@fab.ae"},
		{"Farnek Services", "Farnek", "Hassan Al-Hosani", "+971 2 555 7890", "hassan@farnek.com"},
		{"Khidmah LLC", "Khidmah", "Sara Al-Ketbi", "+971 2 446 2345", "sara.k@khidmah.com"},
		{"MPM Properties", "MPM", "Omar Rashed", "+971 2 633 4567", "omar.r@mpm.ae"},
		{"United Real Estate", "URE", "Fatima Al-Ali", "+971 2 621 8901", "fatima@ure.ae"},
		{"Al Reef Villas", "ARV", "Khalid Al-Mansoori", "+971 2 557 2345", "khalid@alreef.ae"},
		{"Reem Island Tower Mgmt", "RITM", "Noura Al-Shamsi", "+971 2 444 6789", "noura@reemtowers.ae"},
		{"Yas Plaza Hotels", "YPH", "Rashid Al-Dhaheri", "+971 2 496 1234", "rashid@yasplaza.ae"},
	}

	for _, c := range clients {
		if _, err := db.conn.Exec(`
			INSERT INTO clients (name, short_name, contact_person, phone, email)
			VALUES (?, ?, ?, ?, ?)
		`, c.name, c.shortName, c.contact, c.phone, c.email); err != nil {
			return fmt.Errorf("failed to seed client: %w", err)
		}
	}

	buildings := []demoBuilding{
		{1, "FAB HQ Tower", "Al Maryah Island", 24},
		{1, "FAB Al Wahda Branch", "Al Wahda", 8},
		{1, "FAB Khalifa City Branch", "Khalifa City", 6},
		{2, "Farnek HQ", "Musaffah", 18},
		{2, "Staff Accommodation", "ICAD", 12},
		{3, "Tower A", "Al Reem Island", 32},
		{3, "Tower B", "Al Reem Island", 28},
		{3, "Community Center", "Al Reef", 10},
		{4, "Office Complex", "Hamdan Street", 14},
		{4, "Warehouse", "Mussafah", 8},
		{5, "Commercial Tower", "Corniche Road", 22},
		{5, "Residential Block", "Tourist Club", 16},
		{6, "Cluster A - 50 Villas", "Al Reef", 50},
		{6, "Cluster B - 45 Villas", "Al Reef", 45},
		{7, "Reem Heights", "Al Reem Island", 38},
		{7, "Reem Plaza Mall", "Al Reem Island", 26},
		{8, "Hotel Main", "Yas Island", 42},
		{8, "Conference Center", "Yas Island", 20},
	}

	buildingIDs := make([]int, len(buildings))
	for i, b := range buildings {
		result, err := db.conn.Exec(`
			INSERT INTO buildings (client_id, name, area) VALUES (?, ?, ?)
		`, b.clientIdx, b.name, b.area)
		if err != nil {
			return fmt.Errorf("failed to seed building: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get seeded building ID: %w", err)
		}
		buildingIDs[i] = int(id)
	}

	// Крупные клиенты платят поквартально, средние дважды в год, мелкие раз в год.
	clientPaymentTerms := map[int]string{
		1: "quarterly", 3: "quarterly",
		2: "semi_annual", 5: "semi_annual", 7: "semi_annual", 8: "semi_annual",
		4: "annual", 6: "annual",
	}

	contractIDs := make([]int, len(buildings))
	contractValues := make([]float64, len(buildings))
	for i, b := range buildings {
		start := today.AddDate(0, 0, -faker.Number(200, 300))
		end := start.AddDate(0, 0, 365)
		annualValue := demoAnnualValue(faker, b.equipCount)

		result, err := db.conn.Exec(`
			INSERT INTO contracts (building_id, start_date, end_date, visits_per_year, annual_value, payment_terms, status)
			VALUES (?, ?, ?, 4, ?, ?, 'active')
		`, buildingIDs[i], start.Format(isoDate), end.Format(isoDate), annualValue, clientPaymentTerms[b.clientIdx])
		if err != nil {
			return fmt.Errorf("failed to seed contract: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get seeded contract ID: %w", err)
		}
		contractIDs[i] = int(id)
		contractValues[i] = annualValue
	}

	if err := db.seedEquipment(faker, buildings, buildingIDs); err != nil {
		return err
	}
	if err := db.seedInspections(faker, today, buildings, buildingIDs); err != nil {
		return err
	}
	if err := db.seedComplaints(today, buildingIDs); err != nil {
		return err
	}
	shortNames := make([]string, len(clients))
	for i, c := range clients {
		shortNames[i] = c.shortName
	}
	if err := db.seedPayments(faker, today, shortNames, buildings, contractIDs, contractValues); err != nil {
		return err
	}

	log.Printf("Demo data seeded: %d clients, %d buildings", len(clients), len(buildings))
	return nil
}

// demoAnnualValue стоимость договора пропорциональна числу единиц оборудования
func demoAnnualValue(faker *gofakeit.Faker, equipCount int) float64 {
	switch {
	case equipCount <= 12:
		return float64(faker.Number(15, 22) * 1000)
	case equipCount <= 28:
		return float64(faker.Number(25, 35) * 1000)
	default:
		return float64(faker.Number(38, 55) * 1000)
	}
}

func (db *DB) seedEquipment(faker *gofakeit.Faker, buildings []demoBuilding, buildingIDs []int) error {
	types := []interface{}{
		"Smoke Detector",
		"Fire Extinguisher DCP",
		"Fire Extinguisher CO2",
		"Sprinkler System",
		"Emergency Light",
		"Hose Reel",
		"Exit Sign",
		"FM200 System",
	}
	weights := []float32{0.25, 0.15, 0.08, 0.05, 0.18, 0.08, 0.15, 0.06}

	for i, b := range buildings {
		// В каждом здании как минимум одна пожарная панель.
		items := []string{"Fire Alarm Panel"}
		for n := 1; n < b.equipCount; n++ {
			chosen, err := faker.Weighted(types, weights)
			if err != nil {
				return fmt.Errorf("failed to pick equipment type: %w", err)
			}
			items = append(items, chosen.(string))
		}

		for _, eqType := range items {
			if _, err := db.conn.Exec(`
				INSERT INTO equipment (building_id, type, status) VALUES (?, ?, 'OK')
			`, buildingIDs[i], eqType); err != nil {
				return fmt.Errorf("failed to seed equipment: %w", err)
			}
		}
	}

	return nil
}

// Целевое распределение статусов по индексам зданий (0-based):
// просроченные, на подходе, остальные обслужены недавно.
var (
	demoOverdueIdx = map[int]bool{1: true, 4: true, 9: true, 11: true}
	demoDueSoonIdx = map[int]bool{3: true, 7: true, 10: true, 14: true, 16: true}
)

var demoInspectionNotes = []string{
	"All systems functioning normally.",
	"Minor issues noted, follow-up recommended.",
	"Equipment in good condition. Batteries replaced on smoke detectors.",
	"Sprinkler pressure tested. All readings within range.",
	"Fire extinguishers serviced. New tags attached.",
	"Emergency lights tested. Two units need bulb replacement.",
	"Exit signs illumination checked. All operational.",
	"Fire alarm panel tested. Zone 3 sensor cleaned.",
	"Full system check completed. No issues found.",
	"Hose reels tested. Water pressure satisfactory.",
}

func (db *DB) seedInspections(faker *gofakeit.Faker, today time.Time, buildings []demoBuilding, buildingIDs []int) error {
	insert := func(buildingIdx int, date time.Time) error {
		equipCount := buildings[buildingIdx].equipCount
		failRate := faker.Float64Range(0, 0.10)
		itemsFailed := int(float64(equipCount) * failRate)
		itemsPassed := equipCount - itemsFailed

		_, err := db.conn.Exec(`
			INSERT INTO inspections (building_id, inspection_date, technician, items_checked, items_passed, items_failed, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, buildingIDs[buildingIdx], date.Format(isoDate),
			faker.RandomString(Technicians), equipCount, itemsPassed, itemsFailed,
			faker.RandomString(demoInspectionNotes))
		if err != nil {
			return fmt.Errorf("failed to seed inspection: %w", err)
		}
		return nil
	}

	for idx := range buildings {
		switch {
		case demoOverdueIdx[idx]:
			// Последнее обслуживание 95-130 дней назад — просрочка на 5-35 дней.
			last := today.AddDate(0, 0, -faker.Number(95, 130))
			if err := insert(idx, last); err != nil {
				return err
			}
			if err := insert(idx, last.AddDate(0, 0, -faker.Number(85, 100))); err != nil {
				return err
			}

		case demoDueSoonIdx[idx]:
			// Последнее обслуживание 78-88 дней назад — очередное через 3-13 дней.
			last := today.AddDate(0, 0, -faker.Number(78, 88))
			if err := insert(idx, last); err != nil {
				return err
			}
			if err := insert(idx, last.AddDate(0, 0, -faker.Number(85, 100))); err != nil {
				return err
			}

		default:
			// Обслужено в последние 1-20 дней плюс два исторических визита.
			last := today.AddDate(0, 0, -faker.Number(1, 20))
			mid := last.AddDate(0, 0, -faker.Number(85, 100))
			older := mid.AddDate(0, 0, -faker.Number(85, 100))
			for _, d := range []time.Time{last, mid, older} {
				if err := insert(idx, d); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func (db *DB) seedComplaints(today time.Time, buildingIDs []int) error {
	year := today.Year()
	complaints := []struct {
		ticket      string
		clientID    int
		buildingIdx int
		message     string
		priority    string
		status      string
		technician  interface{}
		daysAgo     int
	}{
		{fmt.Sprintf("TTS-%d-0001", year), 3, 5,
			"Fire alarm panel showing fault code E-14 on 3rd floor. Panel beeping intermittently.",
			"high", "open", nil, 2},
		{fmt.Sprintf("TTS-%d-0002", year), 1, 0,
			"Two emergency lights on parking level B2 not functioning during monthly test.",
			"medium", "assigned", "Suresh Kumar", 5},
		{fmt.Sprintf("TTS-%d-0003", year), 8, 16,
			"Kitchen hood suppression system requires inspection after minor grease fire incident.",
			"high", "in_progress", "Mohammed Al-Rashid", 8},
		{fmt.Sprintf("TTS-%d-0004", year), 6, 12,
			"Annual fire extinguisher servicing reminder for villas 12-25.",
			"low", "resolved", "Ahmed Mansoor", 15},
		{fmt.Sprintf("TTS-%d-0005", year), 7, 14,
			"Sprinkler system pressure gauge reading below normal on floors 15-18.",
			"medium", "open", nil, 3},
	}

	for _, c := range complaints {
		if _, err := db.conn.Exec(`
			INSERT INTO complaints (ticket_number, client_id, building_id, message, priority, status, assigned_technician, inspection_id, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, NULL, ?)
		`, c.ticket, c.clientID, buildingIDs[c.buildingIdx], c.message, c.priority, c.status,
			c.technician, today.AddDate(0, 0, -c.daysAgo)); err != nil {
			return fmt.Errorf("failed to seed complaint: %w", err)
		}
	}

	return nil
}

// Платежные когорты по индексам зданий: полностью оплаченные договоры,
// частично оплаченные (последний взнос выставлен), с просроченным платежом
// и с неполной суммой взноса.
var (
	demoFullyPaidIdx   = map[int]bool{0: true, 2: true, 5: true, 6: true, 16: true, 17: true}
	demoPendingIdx     = map[int]bool{3: true, 10: true, 12: true, 14: true, 15: true}
	demoOverduePayIdx  = map[int]bool{1: true, 4: true, 9: true, 11: true}
	demoPartialAmtIdx  = map[int]bool{7: true, 8: true, 13: true}
	demoPaymentMethods = []string{"bank_transfer", "cheque", "bank_transfer", "online"}
)

func (db *DB) seedPayments(faker *gofakeit.Faker, today time.Time, shortNames []string,
	buildings []demoBuilding, contractIDs []int, contractValues []float64) error {

	for i, b := range buildings {
		annualValue := contractValues[i]
		terms := map[int]string{
			1: "quarterly", 3: "quarterly",
			2: "semi_annual", 5: "semi_annual", 7: "semi_annual", 8: "semi_annual",
			4: "annual", 6: "annual",
		}[b.clientIdx]

		var installment float64
		var paymentDates []time.Time

		switch terms {
		case "quarterly":
			installment = annualValue / 4
			base := today.AddDate(0, 0, -180)
			for q := 0; q < 3; q++ {
				pdate := base.AddDate(0, 0, q*91)
				if !pdate.After(today) {
					paymentDates = append(paymentDates, pdate)
				}
			}
		case "semi_annual":
			installment = annualValue / 2
			second := today.AddDate(0, 0, -30)
			if demoOverduePayIdx[i] {
				second = today.AddDate(0, 0, -60)
			}
			paymentDates = []time.Time{today.AddDate(0, 0, -150), second}
		default: // annual
			installment = annualValue
			paymentDates = []time.Time{today.AddDate(0, 0, -120)}
		}

		shortName := shortNames[b.clientIdx-1]

		for j, pdate := range paymentDates {
			method := faker.RandomString(demoPaymentMethods)
			ref := fmt.Sprintf("%s-TRF-%d-%02d", shortName, pdate.Year(), int(pdate.Month()))
			isLast := j == len(paymentDates)-1

			status := "received"
			amount := installment
			var notes interface{}

			switch {
			case demoFullyPaidIdx[i]:
				// Все взносы получены.
			case demoPendingIdx[i] && isLast:
				status = "pending"
			case demoOverduePayIdx[i] && isLast:
				status = "overdue"
			case demoPartialAmtIdx[i] && isLast:
				// Когорта частичных сумм: оплачено 60-80% взноса.
				pct := faker.Float64Range(0.6, 0.8)
				amount = float64(int(installment*pct*100)) / 100
				status = "partial"
				notes = fmt.Sprintf("Partial payment (%.0f%% of AED %.0f)", pct*100, installment)
			}

			if _, err := db.conn.Exec(`
				INSERT INTO payments (contract_id, payment_date, amount, method, reference_number, status, notes)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, contractIDs[i], pdate.Format(isoDate), amount, method, ref, status, notes); err != nil {
				return fmt.Errorf("failed to seed payment: %w", err)
			}
		}
	}

	return nil
}
