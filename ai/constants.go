package ai

// SceneFlags is the bit set stored in Scene.Flags.
type SceneFlags uint32

const (
	SceneFlagIncomplete        SceneFlags = 0x1
	SceneFlagValidated         SceneFlags = 0x2
	SceneFlagValidationWarning SceneFlags = 0x4
	SceneFlagNonVerboseFormat  SceneFlags = 0x8
	SceneFlagTerrain           SceneFlags = 0x10
	SceneFlagAllowShared       SceneFlags = 0x20
)

// MetadataType tags the value union of a MetadataEntry.
type MetadataType uint32

const (
	MetaBool     MetadataType = 0
	MetaInt32    MetadataType = 1
	MetaUint64   MetadataType = 2
	MetaFloat    MetadataType = 3
	MetaDouble   MetadataType = 4
	MetaString   MetadataType = 5
	MetaVector3D MetadataType = 6
)

// PropertyType tags the value union of a MaterialProperty.
type PropertyType uint32

const (
	PropertyFloat  PropertyType = 1
	PropertyDouble PropertyType = 2
	PropertyString PropertyType = 3
	PropertyInt    PropertyType = 4
	PropertyBinary PropertyType = 5
)

// TextureSemantic tells what a texture-carrying material property is used
// for. SemanticNone doubles as the semantic of every non-texture property.
type TextureSemantic uint32

const (
	SemanticNone         TextureSemantic = 0x0
	SemanticDiffuse      TextureSemantic = 0x1
	SemanticSpecular     TextureSemantic = 0x2
	SemanticAmbient      TextureSemantic = 0x3
	SemanticEmissive     TextureSemantic = 0x4
	SemanticHeight       TextureSemantic = 0x5
	SemanticNormals      TextureSemantic = 0x6
	SemanticShininess    TextureSemantic = 0x7
	SemanticOpacity      TextureSemantic = 0x8
	SemanticDisplacement TextureSemantic = 0x9
	SemanticLightmap     TextureSemantic = 0xA
	SemanticReflection   TextureSemantic = 0xB
	SemanticUnknown      TextureSemantic = 0xC
)

// PostProcess is the flag set handed to the engine's import and export
// calls. The engine interprets these; this layer only passes them through.
type PostProcess uint32

const (
	ProcessCalcTangentSpace         PostProcess = 0x1
	ProcessJoinIdenticalVertices    PostProcess = 0x2
	ProcessMakeLeftHanded           PostProcess = 0x4
	ProcessTriangulate              PostProcess = 0x8
	ProcessRemoveComponent          PostProcess = 0x10
	ProcessGenNormals               PostProcess = 0x20
	ProcessGenSmoothNormals         PostProcess = 0x40
	ProcessSplitLargeMeshes         PostProcess = 0x80
	ProcessPreTransformVertices     PostProcess = 0x100
	ProcessLimitBoneWeights         PostProcess = 0x200
	ProcessValidateDataStructure    PostProcess = 0x400
	ProcessImproveCacheLocality     PostProcess = 0x800
	ProcessRemoveRedundantMaterials PostProcess = 0x1000
	ProcessFixInfacingNormals       PostProcess = 0x2000
	ProcessSortByPType              PostProcess = 0x8000
	ProcessFindDegenerates          PostProcess = 0x10000
	ProcessFindInvalidData          PostProcess = 0x20000
	ProcessGenUVCoords              PostProcess = 0x40000
	ProcessTransformUVCoords        PostProcess = 0x80000
	ProcessFindInstances            PostProcess = 0x100000
	ProcessOptimizeMeshes           PostProcess = 0x200000
	ProcessOptimizeGraph            PostProcess = 0x400000
	ProcessFlipUVs                  PostProcess = 0x800000
	ProcessFlipWindingOrder         PostProcess = 0x1000000
	ProcessSplitByBoneCount         PostProcess = 0x2000000
	ProcessDebone                   PostProcess = 0x4000000
	ProcessEmbedTextures            PostProcess = 0x10000000
)

// Well-known material property keys. The engine's canon, reproduced here so
// callers don't scatter string literals.
const (
	MatKeyName          = "?mat.name"
	MatKeyColorDiffuse  = "$clr.diffuse"
	MatKeyColorAmbient  = "$clr.ambient"
	MatKeyColorSpecular = "$clr.specular"
	MatKeyColorEmissive = "$clr.emissive"
	MatKeyOpacity       = "$mat.opacity"
	MatKeyShininess     = "$mat.shininess"
	MatKeyTwoSided      = "$mat.twosided"
	MatKeyTexFile       = "$tex.file"
	MatKeyTexture       = "$tex.texture"
)
