package shared

const (
	UserID = "user_id"
	Role   = "role"

	ModuleMacro     = "macro"
	ModuleMicro     = "micro"
	ModuleFinanzas  = "finanzas"
	ModuleInflacion = "inflacion"
	ModuleCripto    = "cripto"
	ModuleSeguros   = "seguros"

	ExportTypePDF = "PDF"
	ExportTypePNG = "PNG"

	PlanFree    = "free"
	PlanBasic   = "basic"
	PlanPro     = "pro"
	PlanPremium = "premium"

	AuthProviderLocal  = "local"
	AuthProviderGoogle = "google"

	RoleUser  = "user"
	RoleAdmin = "admin"

	InitialCredits = 10
)

// ModuleTypes lists every simulation module a scenario or quiz can belong to.
var ModuleTypes = []string{
	ModuleMacro,
	ModuleMicro,
	ModuleFinanzas,
	ModuleInflacion,
	ModuleCripto,
	ModuleSeguros,
}

func IsValidModuleType(moduleType string) bool {
	for _, m := range ModuleTypes {
		if m == moduleType {
			return true
		}
	}
	return false
}

// PlanCredits maps a purchasable plan to the credit bundle it grants.
var PlanCredits = map[string]int{
	PlanBasic:   25,
	PlanPro:     100,
	PlanPremium: 500,
}
