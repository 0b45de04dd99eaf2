package zoom

import "time"

type CreateMeetingInput struct {
	HostEmail       string
	Topic           string
	StartTime       time.Time
	DurationMinutes int
	Timezone        string
}

type MeetingOutput struct {
	ID       string
	JoinURL  string
	StartURL string
}


// Formato da API do Zoom (POST /users/{userId}/meetings)

type createMeetingRequest struct {
	Topic     string          `json:"topic"`
	Type      int             `json:"type"` // 2 = reunião agendada
	StartTime string          `json:"start_time"`
	Duration  int             `json:"duration"`
	Timezone  string          `json:"timezone"`
	Settings  meetingSettings `json:"settings"`
}

type meetingSettings struct {
	HostVideo        bool   `json:"host_video"`
	ParticipantVideo bool   `json:"participant_video"`
	JoinBeforeHost   bool   `json:"join_before_host"`
	WaitingRoom      bool   `json:"waiting_room"`
	Audio            string `json:"audio"`
	AutoRecording    string `json:"auto_recording"`
}

type meetingResponse struct {
	ID       int64  `json:"id"`
	JoinURL  string `json:"join_url"`
	StartURL string `json:"start_url"`
}
