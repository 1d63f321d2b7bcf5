package seeders

type seedUser struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type seedTeam struct {
	Name           string
	Description    string
	Specialization string
	LeadEmail      string
	Members        []string
}

type seedEquipment struct {
	Name         string
	SerialNumber string
	Category     string
	Location     string
	Department   string
	TeamName     string
}

var demoUsers = []seedUser{
	{Name: "Администратор", Email: "admin@gearguard.local", Password: "admin123", Role: "admin"},
	{Name: "Олег Смирнов", Email: "supervisor@gearguard.local", Password: "supervisor123", Role: "supervisor"},
	{Name: "Анна Котова", Email: "anna@gearguard.local", Password: "technician123", Role: "technician"},
	{Name: "Игорь Лебедев", Email: "igor@gearguard.local", Password: "technician123", Role: "technician"},
}

var demoTeams = []seedTeam{
	{
		Name:           "Mechanics",
		Description:    "Обслуживание станочного парка",
		Specialization: "Machinery",
		LeadEmail:      "supervisor@gearguard.local",
		Members:        []string{"supervisor@gearguard.local", "anna@gearguard.local"},
	},
	{
		Name:           "Electricians",
		Description:    "Электрика и приводы",
		Specialization: "Electrical",
		LeadEmail:      "supervisor@gearguard.local",
		Members:        []string{"igor@gearguard.local"},
	},
}

var demoEquipment = []seedEquipment{
	{Name: "CNC Lathe", SerialNumber: "CNC-0001", Category: "Machinery", Location: "Цех 1", Department: "Production", TeamName: "Mechanics"},
	{Name: "Hydraulic Press", SerialNumber: "HP-0002", Category: "Machinery", Location: "Цех 2", Department: "Production", TeamName: "Mechanics"},
	{Name: "Forklift", SerialNumber: "FL-0003", Category: "Vehicles", Location: "Склад", Department: "Logistics", TeamName: "Mechanics"},
	{Name: "Main Switchboard", SerialNumber: "SW-0004", Category: "Electrical", Location: "Подстанция", Department: "Utilities", TeamName: "Electricians"},
}
