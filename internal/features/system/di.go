package system

var healthcheckController = &HealthcheckController{}

func GetHealthcheckController() *HealthcheckController {
	return healthcheckController
}
