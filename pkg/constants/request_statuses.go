package constants

// --- СТАТУСЫ ЗАЯВОК НА ОБСЛУЖИВАНИЕ ---
const (
	RequestStatusNew        = "New"
	RequestStatusInProgress = "In Progress"
	RequestStatusRepaired   = "Repaired"
	RequestStatusScrap      = "Scrap"
)

// Порядок колонок канбан-доски.
var RequestStatuses = []string{
	RequestStatusNew,
	RequestStatusInProgress,
	RequestStatusRepaired,
	RequestStatusScrap,
}

// Финальные статусы
var ClosedRequestStatuses = []string{
	RequestStatusRepaired,
	RequestStatusScrap,
}

func IsValidRequestStatus(status string) bool {
	for _, s := range RequestStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsClosedRequestStatus(status string) bool {
	for _, s := range ClosedRequestStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// --- ТИПЫ И ПРИОРИТЕТЫ ---
const (
	RequestTypeCorrective = "Corrective"
	RequestTypePreventive = "Preventive"

	PriorityLow      = "Low"
	PriorityMedium   = "Medium"
	PriorityHigh     = "High"
	PriorityCritical = "Critical"
)

// Формат номера заявки: REQ-<год>-<последовательность от 4 цифр>.
const RequestNumberFormat = "REQ-%d-%04d"
