package healthcheck

var healthController = &HealthController{}

func GetHealthController() *HealthController {
	return healthController
}
