package domain

import "github.com/google/uuid"

// RosterEntry - строка снимка парка для зеркальной синхронизации.
// Собирается одним join-запросом; дубликатов по тягачу быть не может,
// так как и прицеп, и водитель закреплены максимум за одним тягачом.
type RosterEntry struct {
	TruckID      uuid.UUID
	Plate        string
	TrailerPlate string
	DriverName   string
	DriverCPF    string
	Type         TruckType
	Flow         TruckFlow
	OwnerCode    string
	OwnerName    string
	Status       TruckStatus
}
