package intake

import (
	"slices"

	"github.com/ornina/callcenter/internal/domain"
)

// stageField maps a collection stage to the field it collects.
var stageField = map[domain.IVRStage]domain.FieldName{
	domain.StageCollectName:        domain.FieldFullName,
	domain.StageCollectPhone:       domain.FieldPhone,
	domain.StageCollectEmail:       domain.FieldEmail,
	domain.StageCollectServiceType: domain.FieldServiceType,
}

// stageOrder is the linear flow of the intake machine.
var stageOrder = []domain.IVRStage{
	domain.StageWelcome,
	domain.StageCollectName,
	domain.StageCollectPhone,
	domain.StageCollectEmail,
	domain.StageCollectServiceType,
	domain.StageConfirmData,
	domain.StageRouteToDepartment,
	domain.StageDepartmentHandling,
	domain.StageCallEnded,
}

// NextStage returns the stage following current, skipping collection
// stages for fields not in required and the confirmation stage when
// confirm is false. CALL_ENDED is terminal and self-transitioning.
func NextStage(current domain.IVRStage, required []domain.FieldName, confirm bool) domain.IVRStage {
	if current == domain.StageCallEnded {
		return domain.StageCallEnded
	}

	idx := slices.Index(stageOrder, current)
	if idx < 0 {
		// Unknown stage values degrade to department handling rather
		// than wedging the call.
		return domain.StageDepartmentHandling
	}

	for _, next := range stageOrder[idx+1:] {
		if field, ok := stageField[next]; ok && !slices.Contains(required, field) {
			continue
		}
		if next == domain.StageConfirmData && !confirm {
			continue
		}
		return next
	}
	return domain.StageCallEnded
}
