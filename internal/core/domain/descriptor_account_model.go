package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/Sosthene00/bitcoin-pro/pkg/descriptor"
	"github.com/Sosthene00/bitcoin-pro/pkg/hdwallet"
)

// Descriptor template type tags in their stored form.
const (
	TemplateSingleSig = "singlesig"
	TemplateMultiSig  = "multisig"
	TemplateScripted  = "scripted"
)

// DescriptorAccount is a stored descriptor: a template recipe plus the script
// variants to generate for it. The template is kept in serialized parts and
// reassembled on demand.
type DescriptorAccount struct {
	ID           uuid.UUID
	Name         string
	TemplateType string
	Keys         []KeyRecipe
	Threshold    int
	Reorder      bool
	ScriptSource string
	ScriptType   string
	Variants     descriptor.Variants
	CreatedAt    time.Time
}

// DescriptorAccountOpts is the struct given to the NewDescriptorAccount
// method. Keys, Threshold and Reorder apply to key templates; ScriptSource
// and ScriptType to scripted ones.
type DescriptorAccountOpts struct {
	Name         string
	TemplateType string
	Keys         []KeyRecipe
	Threshold    int
	Reorder      bool
	ScriptSource string
	ScriptType   string
	Variants     descriptor.Variants
}

// NewDescriptorAccount returns a new account after checking that its template
// assembles into a usable generator.
func NewDescriptorAccount(opts DescriptorAccountOpts) (*DescriptorAccount, error) {
	if len(opts.Name) <= 0 {
		return nil, ErrAccountNameRequired
	}

	account := &DescriptorAccount{
		ID:           uuid.New(),
		Name:         opts.Name,
		TemplateType: opts.TemplateType,
		Keys:         opts.Keys,
		Threshold:    opts.Threshold,
		Reorder:      opts.Reorder,
		ScriptSource: opts.ScriptSource,
		ScriptType:   opts.ScriptType,
		Variants:     opts.Variants,
		CreatedAt:    time.Now(),
	}

	generator, err := account.Generator()
	if err != nil {
		return nil, err
	}
	if _, err := generator.Scripts(); err != nil {
		return nil, err
	}
	return account, nil
}

// Generator reassembles the stored template parts into a script generator.
func (a *DescriptorAccount) Generator() (descriptor.Generator, error) {
	template, err := a.template()
	if err != nil {
		return descriptor.Generator{}, err
	}
	return descriptor.Generator{
		Template: template,
		Variants: a.Variants,
	}, nil
}

// Ranges returns the derivation index set of the first derivable key of the
// template, nil when all keys are fixed.
func (a *DescriptorAccount) Ranges() (*hdwallet.IndexRangeSet, error) {
	for _, key := range a.Keys {
		if key.IsDerivable() {
			return key.Ranges()
		}
	}
	return nil, nil
}

func (a *DescriptorAccount) template() (descriptor.Template, error) {
	switch a.TemplateType {
	case TemplateSingleSig:
		if len(a.Keys) <= 0 {
			return nil, descriptor.ErrEmptyKey
		}
		key, err := a.Keys[0].SingleSig()
		if err != nil {
			return nil, err
		}
		return descriptor.SingleSigTemplate{Key: key}, nil

	case TemplateMultiSig:
		keys := make([]descriptor.SingleSig, 0, len(a.Keys))
		for _, recipe := range a.Keys {
			key, err := recipe.SingleSig()
			if err != nil {
				return nil, err
			}
			keys = append(keys, key)
		}
		return descriptor.MultiSigTemplate{
			Threshold: a.Threshold,
			Pubkeys:   keys,
			Reorder:   a.Reorder,
		}, nil

	case TemplateScripted:
		return descriptor.NewScriptedTemplate(
			a.ScriptSource, descriptor.ScriptSourceType(a.ScriptType),
		)

	default:
		return nil, ErrUnknownTemplateType
	}
}
