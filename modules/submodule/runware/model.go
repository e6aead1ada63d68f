package runware

// TaskRequest - Runware imageInference task
type TaskRequest struct {
	TaskType       string  `json:"taskType"`
	TaskUUID       string  `json:"taskUUID"`
	PositivePrompt string  `json:"positivePrompt"`
	NegativePrompt string  `json:"negativePrompt,omitempty"`
	Model          string  `json:"model"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	NumberResults  int     `json:"numberResults"`
	OutputType     string  `json:"outputType"`
	OutputFormat   string  `json:"outputFormat"`
	Steps          int     `json:"steps,omitempty"`
	CFGScale       float64 `json:"CFGScale,omitempty"`
}

// TaskResponse - Runware API 응답
type TaskResponse struct {
	Data []struct {
		TaskType  string `json:"taskType"`
		TaskUUID  string `json:"taskUUID"`
		ImageURL  string `json:"imageURL"`
		ImageUUID string `json:"imageUUID"`
	} `json:"data"`
	Errors []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"errors,omitempty"`
	Error string `json:"error,omitempty"`
}
