package repository

import "errors"

var (
	ErrSkillNotFound      = errors.New("skill not found")
	ErrRoleNotFound       = errors.New("role not found")
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrSkillGapNotFound   = errors.New("skill gap not found")
	ErrMetricsNotFound    = errors.New("skill metrics not found")
	ErrPrerequisiteCycle  = errors.New("prerequisite would create a cycle")
)
