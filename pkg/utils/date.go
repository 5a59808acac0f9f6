package utils

import (
	"log"
	"time"
)

func GetWibTimeLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		log.Fatal("Failed to load location", err)
	}
	return loc
}

func TimeNowWIB() time.Time {
	return time.Now().In(GetWibTimeLocation())
}

func PrettyDate(t time.Time) string {
	return t.In(GetWibTimeLocation()).Format("02 Jan 2006 15:04:05 WIB")
}
