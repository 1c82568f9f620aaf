package get_capacities

import "github.com/m04kA/SMC-SlotInventory/internal/service/slots/models"

type SlotsService interface {
	Capacities() *models.CapacitiesResponse
}
