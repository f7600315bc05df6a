package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessmentUsecase_UpsertOverwrites(t *testing.T) {
	userID := uuid.New()
	skillID := uuid.New()
	repo := &mockAssessmentRepo{}
	uc := NewAssessmentUsecase(repo, newMockSkillRepo(skillID), nil)
	ctx := context.Background()

	first, err := uc.UpsertAssessment(ctx, userID, UpsertAssessmentInput{SkillID: skillID, CurrentLevel: 2})
	require.NoError(t, err)

	four := 4
	second, err := uc.UpsertAssessment(ctx, userID, UpsertAssessmentInput{
		SkillID:            skillID,
		CurrentLevel:       3,
		TargetLevel:        &four,
		CompletedResources: []string{" tour ", ""},
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	got, err := uc.GetAssessment(ctx, userID, skillID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.CurrentLevel)
	assert.Equal(t, []string{"tour"}, got.CompletedResources)

	list, err := uc.ListAssessments(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAssessmentUsecase_Validation(t *testing.T) {
	userID := uuid.New()
	skillID := uuid.New()
	uc := NewAssessmentUsecase(&mockAssessmentRepo{}, newMockSkillRepo(skillID), nil)
	ctx := context.Background()

	_, err := uc.UpsertAssessment(ctx, userID, UpsertAssessmentInput{SkillID: skillID, CurrentLevel: 0})
	assert.ErrorIs(t, err, ErrInvalidLevel)

	_, err = uc.UpsertAssessment(ctx, userID, UpsertAssessmentInput{SkillID: skillID, CurrentLevel: 6})
	assert.ErrorIs(t, err, ErrInvalidLevel)

	zero := 0
	_, err = uc.UpsertAssessment(ctx, userID, UpsertAssessmentInput{SkillID: skillID, CurrentLevel: 3, TargetLevel: &zero})
	assert.ErrorIs(t, err, ErrInvalidLevel)

	_, err = uc.UpsertAssessment(ctx, userID, UpsertAssessmentInput{SkillID: skillID, CurrentLevel: 3, PracticeHours: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.UpsertAssessment(ctx, userID, UpsertAssessmentInput{SkillID: uuid.New(), CurrentLevel: 3})
	assert.ErrorIs(t, err, ErrSkillNotFound)

	_, err = uc.GetAssessment(ctx, userID, skillID)
	assert.ErrorIs(t, err, ErrAssessmentNotFound)
}
