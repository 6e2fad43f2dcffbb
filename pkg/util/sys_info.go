package util

import (
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// GetOSPrettyName 返回带发行版与版本信息的操作系统描述，取不到时退回 GOOS
func GetOSPrettyName() string {
	switch runtime.GOOS {
	case "linux":
		return linuxPrettyName()
	case "windows":
		if out := commandOutput("cmd", "/c", "ver"); out != "" {
			return out
		}
		return "Windows"
	case "darwin":
		if out := commandOutput("sw_vers", "-productVersion"); out != "" {
			return "macOS " + out
		}
		return "macOS"
	default:
		return runtime.GOOS
	}
}

// linuxPrettyName 读取 /etc/os-release 的 PRETTY_NAME 字段
func linuxPrettyName() string {
	data, err := os.ReadFile("/etc/os-release")
	if err != nil {
		return "Linux"
	}
	for _, line := range strings.Split(string(data), "\n") {
		if v, ok := strings.CutPrefix(line, "PRETTY_NAME="); ok {
			return strings.Trim(v, "\"")
		}
	}
	return "Linux"
}

func commandOutput(name string, args ...string) string {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
