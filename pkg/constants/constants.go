// pkg/constants/constants.go
package constants

//============== ROLES ==============

const (
	RoleEmployee   = "employee"
	RoleTechnician = "technician"
	RoleSupervisor = "supervisor"
	RoleAdmin      = "admin"
)

// Роли, которые считаются техническим персоналом в отчётах.
var TechnicalRoles = []string{RoleTechnician, RoleSupervisor}

//============== EQUIPMENT ==============

const (
	DefaultEquipmentCategory = "Machinery"
	EquipmentStatusActive    = "Active"
	EquipmentStatusScrap     = "Scrap"
)

//============== CACHE KEYS ==============

// Префиксы для ключей в Redis. Ключ строится по нормализованному email,
// а не по ID, чтобы блокировка не выдавала существование аккаунта.
const (
	CacheKeyLoginAttempts = "login_attempts:%s"
	CacheKeyLockout       = "lockout:%s"
)

//============== MISC ==============

const (
	MinPasswordLength = 6
	MinSearchLength   = 2
	NotAvailable      = "N/A"
)
