package authz

// ScopeFor derives the row predicate a principal gets for an entity kind.
// Every read and write path must run through it; the rules compose
// conjunctively, so later rules narrow and never widen the tenant base.
//
// Derivation order:
//  1. Unauthenticated principals see nothing.
//  2. SuperAdmin and the role-less internal principal see everything.
//  3. A tenant principal without a school sees nothing.
//  4. Tenant-scoped kinds are filtered to the principal's school; the School
//     kind is filtered to the principal's own school row.
//  5. Teachers additionally only see the Exams and Schedulers they authored
//     or are assigned to.
//  6. Students only see their own Student row, their own published Results,
//     and curriculum rows of their own grade. A student without a grade sees
//     no curriculum rows at all.
func ScopeFor(p Principal, kind Kind) Predicate {
	if !p.Authenticated {
		return None()
	}
	if p.Bypass() {
		return All()
	}
	if p.SchoolID == nil {
		return None()
	}

	pred := All()
	switch {
	case kind == KindSchool:
		pred = pred.And(FieldEq(FieldID, *p.SchoolID))
	case kind.TenantScoped():
		pred = pred.And(FieldEq(FieldSchoolID, *p.SchoolID))
	}

	switch p.Role {
	case RoleTeacher:
		if p.TeacherID != nil && (kind == KindExam || kind == KindScheduler) {
			pred = pred.And(AnyOf(
				FieldEq(FieldCreatedByTeacherID, *p.TeacherID),
				FieldEq(FieldTeacherID, *p.TeacherID),
			))
		}
	case RoleStudent:
		if p.StudentID == nil {
			break
		}
		if kind == KindStudent {
			pred = pred.And(FieldEq(FieldID, *p.StudentID))
		}
		if kind == KindResult {
			pred = pred.And(FieldEq(FieldStudentID, *p.StudentID)).
				And(FieldEq(FieldIsPublished, true))
		}
		if kind.CurriculumScoped() {
			if p.GradeID == nil {
				return None()
			}
			pred = pred.And(FieldEq(FieldGradeID, *p.GradeID))
		}
	}

	return pred
}
