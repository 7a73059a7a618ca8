package authz

// Kind identifies an entity kind for scope derivation.
type Kind string

const (
	KindSchool           Kind = "school"
	KindGrade            Kind = "grade"
	KindTeacher          Kind = "teacher"
	KindStudent          Kind = "student"
	KindModule           Kind = "module"
	KindLesson           Kind = "lesson"
	KindScheduler        Kind = "scheduler"
	KindExam             Kind = "exam"
	KindQuestion         Kind = "question"
	KindResult           Kind = "result"
	KindAttendance       Kind = "attendance"
	KindLessonCompletion Kind = "lesson_completion"
	KindUser             Kind = "user"
)

// tenantScoped is the set of kinds carrying a SchoolID column that the base
// tenant predicate applies to. School itself is scoped by its own id instead.
var tenantScoped = map[Kind]bool{
	KindGrade:            true,
	KindTeacher:          true,
	KindStudent:          true,
	KindModule:           true,
	KindLesson:           true,
	KindScheduler:        true,
	KindExam:             true,
	KindQuestion:         true,
	KindResult:           true,
	KindAttendance:       true,
	KindLessonCompletion: true,
	KindUser:             true,
}

// curriculumScoped is the set of kinds a student's visibility is gated on
// through their grade.
var curriculumScoped = map[Kind]bool{
	KindGrade:     true,
	KindModule:    true,
	KindLesson:    true,
	KindExam:      true,
	KindScheduler: true,
}

// TenantScoped reports whether the base school filter applies to k.
func (k Kind) TenantScoped() bool { return tenantScoped[k] }

// CurriculumScoped reports whether student grade filtering applies to k.
func (k Kind) CurriculumScoped() bool { return curriculumScoped[k] }
