package domain

// CSV 表头列名。表头按名字查列位，允许改列顺序；
// 兼容列（查询页读取的字段）各有一个备选名。
const (
	ColID         = "ID"
	ColImageURL   = "IMAGE_URL"
	ColImageAlt   = "IMG_URL"
	ColName       = "CARPET_NAME"
	ColNameAlt    = "NAME"
	ColModel      = "MODEL"
	ColModelAlt   = "CINS"
	ColPattern    = "PATTERN_NO"
	ColPatternAlt = "DESEN_NO"
	ColQRText     = "QR_TEXT"
)

// 查询页依赖的文档字段名，导入时必须写全（缺省为空串）。
const (
	FieldCode      = "code"
	FieldName      = "name"
	FieldModel     = "model"
	FieldPatternNo = "patternNo"
	FieldImageURL  = "imageUrl"
)

// Collection 是远端文档集合名。
const Collection = "carpets"
