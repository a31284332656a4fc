package request

type ThumbnailRequest struct {
	Src    string `form:"src" json:"src"`
	Width  int    `form:"width" json:"width" binding:"min=0"`
	Height int    `form:"height" json:"height" binding:"min=0"`
	Mode   string `form:"mode" json:"mode" binding:"max=32"`
	Zoom   int    `form:"zoom" json:"zoom" binding:"min=0,max=100"`
}
