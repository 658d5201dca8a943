package models

// StatusOK is the status value the weather API reports on success.
const StatusOK = "ok"

type RealtimeResponse struct {
	Status string         `json:"status"`
	Result RealtimeResult `json:"result"`
}

type RealtimeResult struct {
	Realtime Realtime `json:"realtime"`
}

type Realtime struct {
	Skycon      string     `json:"skycon"`
	Temperature float64    `json:"temperature"`
	AirQuality  AirQuality `json:"air_quality"`
}

type AirQuality struct {
	AQI AQI `json:"aqi"`
}

type AQI struct {
	Chn float64 `json:"chn"`
}

type DailyResponse struct {
	Status string      `json:"status"`
	Result DailyResult `json:"result"`
}

type DailyResult struct {
	Daily Daily `json:"daily"`
}

type Daily struct {
	Temperature []Temperature `json:"temperature"`
	Skycon      []Skycon      `json:"skycon"`
	LifeIndex   LifeIndex     `json:"life_index"`
}

type Temperature struct {
	Max float64 `json:"max"`
	Min float64 `json:"min"`
}

type Skycon struct {
	Value string `json:"value"`
	Date  string `json:"date"`
}

type LifeIndex struct {
	ColdRisk    []LifeDescription `json:"coldRisk"`
	CarWashing  []LifeDescription `json:"carWashing"`
	Ultraviolet []LifeDescription `json:"ultraviolet"`
	Dressing    []LifeDescription `json:"dressing"`
}

type LifeDescription struct {
	Desc string `json:"desc"`
}

// Weather combines a realtime snapshot with the daily forecast. It is only
// built when both fetches succeeded.
type Weather struct {
	Realtime Realtime `json:"realtime"`
	Daily    Daily    `json:"daily"`
}
