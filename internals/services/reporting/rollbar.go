package reporting

import (
	"log"
	"os"

	"github.com/rollbar/rollbar-go"
)

// Init mengaktifkan Rollbar hanya kalau token tersedia.
func Init(token, env, appName string) {
	host, _ := os.Hostname()
	rollbar.SetToken(token)
	rollbar.SetEnvironment(env)
	rollbar.SetServerHost(host)
	rollbar.SetServerRoot(appName)
	rollbar.SetEnabled(token != "")
	if token != "" {
		log.Println("[INFO] Rollbar aktif")
	}
}

// Error melaporkan error (5xx/panic) ke Rollbar + log lokal.
func Error(err error, extras ...map[string]interface{}) {
	if err == nil {
		return
	}
	log.Printf("[ERROR] %v", err)
	if len(extras) > 0 && extras[0] != nil {
		rollbar.Error(err, extras[0])
		return
	}
	rollbar.Error(err)
}

// Critical dipakai untuk panic yang tertangkap recover middleware.
func Critical(v interface{}, extras map[string]interface{}) {
	log.Printf("[ERROR] panic: %v", v)
	if extras != nil {
		rollbar.Critical(v, extras)
		return
	}
	rollbar.Critical(v)
}

// Close menunggu antrean Rollbar terkirim (dipanggil saat shutdown).
func Close() {
	rollbar.Close()
}
