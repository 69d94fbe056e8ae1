package domain

// OrganType classifies the organ a workspace's slides were sampled from.
type OrganType string

const (
	OrganTypeBrain          OrganType = "brain"
	OrganTypeBreast         OrganType = "breast"
	OrganTypeColon          OrganType = "colon"
	OrganTypeRectum         OrganType = "rectum"
	OrganTypeLung           OrganType = "lung"
	OrganTypeLiver          OrganType = "liver"
	OrganTypeKidney         OrganType = "kidney"
	OrganTypeProstate       OrganType = "prostate"
	OrganTypeSkin           OrganType = "skin"
	OrganTypeStomach        OrganType = "stomach"
	OrganTypePancreas       OrganType = "pancreas"
	OrganTypeThyroid        OrganType = "thyroid"
	OrganTypeBladder        OrganType = "bladder"
	OrganTypeUterus         OrganType = "uterus"
	OrganTypeOvary          OrganType = "ovary"
	OrganTypeCervix         OrganType = "cervix"
	OrganTypeEsophagus      OrganType = "esophagus"
	OrganTypeTestis         OrganType = "testis"
	OrganTypeLymphNode      OrganType = "lymph_node"
	OrganTypeBoneMarrow     OrganType = "bone_marrow"
	OrganTypeHeart          OrganType = "heart"
	OrganTypeSpleen         OrganType = "spleen"
	OrganTypeAdrenalGland   OrganType = "adrenal_gland"
	OrganTypeGallbladder    OrganType = "gallbladder"
	OrganTypeSmallIntestine OrganType = "small_intestine"
	OrganTypeLarynx         OrganType = "larynx"
	OrganTypeTongue         OrganType = "tongue"
	OrganTypeSalivaryGland  OrganType = "salivary_gland"

	// OrganTypeUnknown is the fallback for unrecognized input; it is not a
	// member of the closed set and never validates.
	OrganTypeUnknown OrganType = "unknown"
)

func (o OrganType) String() string { return string(o) }

func (o OrganType) IsValid() bool {
	switch o {
	case OrganTypeBrain, OrganTypeBreast, OrganTypeColon, OrganTypeRectum,
		OrganTypeLung, OrganTypeLiver, OrganTypeKidney, OrganTypeProstate,
		OrganTypeSkin, OrganTypeStomach, OrganTypePancreas, OrganTypeThyroid,
		OrganTypeBladder, OrganTypeUterus, OrganTypeOvary, OrganTypeCervix,
		OrganTypeEsophagus, OrganTypeTestis, OrganTypeLymphNode, OrganTypeBoneMarrow,
		OrganTypeHeart, OrganTypeSpleen, OrganTypeAdrenalGland, OrganTypeGallbladder,
		OrganTypeSmallIntestine, OrganTypeLarynx, OrganTypeTongue, OrganTypeSalivaryGland:
		return true
	}
	return false
}

// OrganTypeFromString parses a raw organ-type string, falling back to
// OrganTypeUnknown on unrecognized input. Factories that require a valid
// organ must check IsValid on the result.
func OrganTypeFromString(raw string) OrganType {
	if o := OrganType(raw); o.IsValid() {
		return o
	}
	return OrganTypeUnknown
}

// AllOrganTypes returns the 28 organ types in declaration order.
func AllOrganTypes() []OrganType {
	return []OrganType{
		OrganTypeBrain, OrganTypeBreast, OrganTypeColon, OrganTypeRectum,
		OrganTypeLung, OrganTypeLiver, OrganTypeKidney, OrganTypeProstate,
		OrganTypeSkin, OrganTypeStomach, OrganTypePancreas, OrganTypeThyroid,
		OrganTypeBladder, OrganTypeUterus, OrganTypeOvary, OrganTypeCervix,
		OrganTypeEsophagus, OrganTypeTestis, OrganTypeLymphNode, OrganTypeBoneMarrow,
		OrganTypeHeart, OrganTypeSpleen, OrganTypeAdrenalGland, OrganTypeGallbladder,
		OrganTypeSmallIntestine, OrganTypeLarynx, OrganTypeTongue, OrganTypeSalivaryGland,
	}
}

// Label returns the human-readable display name. Total over the enum,
// including the unknown sentinel.
func (o OrganType) Label() string {
	switch o {
	case OrganTypeBrain:
		return "Brain"
	case OrganTypeBreast:
		return "Breast"
	case OrganTypeColon:
		return "Colon"
	case OrganTypeRectum:
		return "Rectum"
	case OrganTypeLung:
		return "Lung"
	case OrganTypeLiver:
		return "Liver"
	case OrganTypeKidney:
		return "Kidney"
	case OrganTypeProstate:
		return "Prostate"
	case OrganTypeSkin:
		return "Skin"
	case OrganTypeStomach:
		return "Stomach"
	case OrganTypePancreas:
		return "Pancreas"
	case OrganTypeThyroid:
		return "Thyroid"
	case OrganTypeBladder:
		return "Bladder"
	case OrganTypeUterus:
		return "Uterus"
	case OrganTypeOvary:
		return "Ovary"
	case OrganTypeCervix:
		return "Cervix"
	case OrganTypeEsophagus:
		return "Esophagus"
	case OrganTypeTestis:
		return "Testis"
	case OrganTypeLymphNode:
		return "Lymph node"
	case OrganTypeBoneMarrow:
		return "Bone marrow"
	case OrganTypeHeart:
		return "Heart"
	case OrganTypeSpleen:
		return "Spleen"
	case OrganTypeAdrenalGland:
		return "Adrenal gland"
	case OrganTypeGallbladder:
		return "Gallbladder"
	case OrganTypeSmallIntestine:
		return "Small intestine"
	case OrganTypeLarynx:
		return "Larynx"
	case OrganTypeTongue:
		return "Tongue"
	case OrganTypeSalivaryGland:
		return "Salivary gland"
	default:
		return "Unknown"
	}
}
