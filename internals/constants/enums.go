package constants

// Severity pelanggaran / tindakan
const (
	SeverityMinor    = "minor"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
)

var Severities = []string{SeverityMinor, SeverityModerate, SeveritySevere}

// SeverityOrderSQL urutan minor → moderate → severe untuk ORDER BY.
func SeverityOrderSQL(col string) string {
	return "CASE " + col +
		" WHEN '" + SeverityMinor + "' THEN 1" +
		" WHEN '" + SeverityModerate + "' THEN 2" +
		" WHEN '" + SeveritySevere + "' THEN 3 ELSE 4 END"
}

// Status rencana perbaikan
const (
	PlanStatusActive    = "active"
	PlanStatusCompleted = "completed"
	PlanStatusCancelled = "cancelled"
)

// Metode komunikasi wali
const (
	CommMethodPhone   = "phone"
	CommMethodMeeting = "meeting"
	CommMethodLetter  = "letter"
	CommMethodOther   = "other"
)

// Jenis notifikasi
const (
	NotificationViolationAlert = "violation_alert"
	NotificationPlanUpdate     = "plan_update"
	NotificationGeneral        = "general"

	SenderSystem = "system"
)

// Metode login
const (
	LoginPassword = "password"
	LoginGoogle   = "google"
)

// Entity type untuk activity log
const (
	EntityAcademicYear          = "academic_year"
	EntityGrade                 = "grade"
	EntitySection               = "section"
	EntityStudent               = "student"
	EntityViolationType         = "violation_type"
	EntityViolation             = "violation"
	EntityActionType            = "action_type"
	EntityDisciplinaryAction    = "disciplinary_action"
	EntityImprovementPlan       = "improvement_plan"
	EntityPlanFollowUp          = "plan_follow_up"
	EntityGuardianCommunication = "guardian_communication"
	EntityUser                  = "user"
)
