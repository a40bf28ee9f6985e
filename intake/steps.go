package intake

import (
	"webcraft/models"
	"webcraft/services/validation"
)

// Step is one state of the intake wizard. Each step carries everything the
// earlier steps collected, so a later step cannot exist without them.
type Step interface {
	// Number is the 1-based position shown in the progress bar.
	Number() int
	isStep()
}

type ProjectTypeStep struct{}

type BusinessInfoStep struct {
	ProjectType string
}

type RequirementsStep struct {
	BusinessInfoStep
	BusinessInfo models.BusinessInfo
}

type TechnicalStep struct {
	RequirementsStep
	Requirements models.Requirements
}

type ConsultationStep struct {
	TechnicalStep
	Technical models.Technical
}

func (ProjectTypeStep) Number() int  { return 1 }
func (BusinessInfoStep) Number() int { return 2 }
func (RequirementsStep) Number() int { return 3 }
func (TechnicalStep) Number() int    { return 4 }
func (ConsultationStep) Number() int { return 5 }

func (ProjectTypeStep) isStep()  {}
func (BusinessInfoStep) isStep() {}
func (RequirementsStep) isStep() {}
func (TechnicalStep) isStep()    {}
func (ConsultationStep) isStep() {}

// StepInput is what the user submits on one step.
type StepInput interface{ isInput() }

type ProjectTypeInput struct{ ProjectType string }

type BusinessInfoInput struct{ models.BusinessInfo }

type RequirementsInput struct{ models.Requirements }

type TechnicalInput struct{ models.Technical }

func (ProjectTypeInput) isInput()  {}
func (BusinessInfoInput) isInput() {}
func (RequirementsInput) isInput() {}
func (TechnicalInput) isInput()    {}

// Advance is the wizard's transition function. It returns the next step, or
// the current step unchanged together with validation.Errors (missing
// fields) or ErrWrongStep (input for another step). The last step has no
// synchronous transition; see Wizard.Submit.
func Advance(current Step, in StepInput) (Step, error) {
	switch s := current.(type) {
	case ProjectTypeStep:
		pt, ok := in.(ProjectTypeInput)
		if !ok {
			return current, ErrWrongStep
		}
		if errs := validation.ProjectType(pt.ProjectType); !errs.Empty() {
			return current, errs
		}
		return BusinessInfoStep{ProjectType: pt.ProjectType}, nil

	case BusinessInfoStep:
		bi, ok := in.(BusinessInfoInput)
		if !ok {
			return current, ErrWrongStep
		}
		if errs := validation.BusinessInfo(bi.BusinessInfo); !errs.Empty() {
			return current, errs
		}
		return RequirementsStep{BusinessInfoStep: s, BusinessInfo: bi.BusinessInfo}, nil

	case RequirementsStep:
		rq, ok := in.(RequirementsInput)
		if !ok {
			return current, ErrWrongStep
		}
		if errs := validation.Requirements(rq.Requirements); !errs.Empty() {
			return current, errs
		}
		req := rq.Requirements
		req.Features = models.NewStringSet(req.Features...)
		return TechnicalStep{RequirementsStep: s, Requirements: req}, nil

	case TechnicalStep:
		tc, ok := in.(TechnicalInput)
		if !ok {
			return current, ErrWrongStep
		}
		if errs := validation.Technical(tc.Technical); !errs.Empty() {
			return current, errs
		}
		tech := tc.Technical
		tech.Technologies = models.NewStringSet(tech.Technologies...)
		return ConsultationStep{TechnicalStep: s, Technical: tech}, nil
	}
	return current, ErrWrongStep
}

// Record returns the part of the project request collected up to step s.
func Record(s Step) models.ProjectRequest {
	var p models.ProjectRequest
	switch st := s.(type) {
	case BusinessInfoStep:
		p.ProjectType = st.ProjectType
	case RequirementsStep:
		p.ProjectType = st.ProjectType
		p.BusinessInfo = st.BusinessInfo
	case TechnicalStep:
		p.ProjectType = st.ProjectType
		p.BusinessInfo = st.BusinessInfo
		p.Requirements = st.Requirements
	case ConsultationStep:
		p.ProjectType = st.ProjectType
		p.BusinessInfo = st.BusinessInfo
		p.Requirements = st.Requirements
		p.Technical = st.Technical
	}
	return p
}
