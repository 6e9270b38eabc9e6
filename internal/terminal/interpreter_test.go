package terminal

import (
	"strings"
	"testing"

	"github.com/blasherlabs/oshack/internal/oshack"
)

func newScenario(t *testing.T) *oshack.Session {
	t.Helper()
	return oshack.NewSession("alice", oshack.KindScenario)
}

// advanceTo completes the chain up to (excluding) the given objective.
func advanceTo(t *testing.T, sess *oshack.Session, id int) {
	t.Helper()
	for sess.CurrentObjective != id {
		if _, err := sess.CompleteObjective(sess.CurrentObjective); err != nil {
			t.Fatalf("advancing to %d: %v", id, err)
		}
	}
}

func TestEmptyLineIsNoop(t *testing.T) {
	res, trs := Execute("   ", "~", newScenario(t))
	if res.Output != "" || res.Err || len(trs) != 0 {
		t.Errorf("empty line should do nothing, got %+v %v", res, trs)
	}
}

func TestUnknownCommand(t *testing.T) {
	res, trs := Execute("frobnicate", "~", newScenario(t))
	if !res.Err {
		t.Error("unknown command should be an error")
	}
	if !strings.Contains(res.Output, "frobnicate") {
		t.Errorf("error should name the command, got %q", res.Output)
	}
	if len(trs) != 0 {
		t.Error("unknown command must not complete anything")
	}
}

func TestHelpCompletesFirstObjective(t *testing.T) {
	sess := newScenario(t)
	res, trs := Execute("help", "~", sess)
	if res.Err {
		t.Fatalf("help failed: %q", res.Output)
	}
	if len(trs) != 1 || trs[0].Objective.ID != 1 {
		t.Fatalf("expected transition for objective 1, got %v", trs)
	}
	if sess.CurrentObjective != 2 {
		t.Errorf("expected current objective 2, got %d", sess.CurrentObjective)
	}
}

func TestCompletionGatedOnCurrentObjective(t *testing.T) {
	sess := newScenario(t)
	advanceTo(t, sess, 5)

	// help completes objective 1, but the chain has moved past it.
	_, trs := Execute("help", "~", sess)
	if len(trs) != 0 {
		t.Errorf("stale command must not emit transitions, got %v", trs)
	}
	if sess.CurrentObjective != 5 {
		t.Errorf("chain must not move, got current %d", sess.CurrentObjective)
	}
}

func TestIfconfig(t *testing.T) {
	sess := newScenario(t)
	advanceTo(t, sess, 2)

	res, trs := Execute("ifconfig", "~", sess)
	if !strings.Contains(res.Output, "192.168.1.50") {
		t.Errorf("expected local IP in output, got %q", res.Output)
	}
	if len(trs) != 1 || trs[0].Objective.ID != 2 {
		t.Errorf("expected objective 2 transition, got %v", trs)
	}
}

func TestNmapNetworkAndPortScan(t *testing.T) {
	sess := newScenario(t)
	advanceTo(t, sess, 3)

	res, trs := Execute("nmap 192.168.1.0/24", "~", sess)
	if !strings.Contains(res.Output, "192.168.1.100") {
		t.Errorf("network scan should reveal the target, got %q", res.Output)
	}
	if len(trs) != 1 || trs[0].Objective.ID != 3 {
		t.Fatalf("expected objective 3 transition, got %v", trs)
	}

	advanceTo(t, sess, 10)
	res, trs = Execute("nmap -p 22,80,443 192.168.1.100", "~", sess)
	if !strings.Contains(res.Output, "ssh") {
		t.Errorf("port scan should list ssh, got %q", res.Output)
	}
	if len(trs) != 1 || trs[0].Objective.ID != 10 {
		t.Errorf("expected objective 10 transition, got %v", trs)
	}
}

func TestSshExactTargetOnly(t *testing.T) {
	sess := newScenario(t)
	advanceTo(t, sess, 11)

	res, trs := Execute("ssh admin@192.168.1.1", "~", sess)
	if !res.Err || len(trs) != 0 {
		t.Errorf("wrong host should be refused, got %+v %v", res, trs)
	}

	res, trs = Execute("ssh admin@192.168.1.100", "~", sess)
	if res.Err {
		t.Fatalf("ssh to the target failed: %q", res.Output)
	}
	if len(trs) != 1 || trs[0].Objective.ID != 11 {
		t.Errorf("expected objective 11 transition, got %v", trs)
	}
}

func TestCdRootRequiresRootAccess(t *testing.T) {
	sess := newScenario(t)

	res, _ := Execute("cd /root", "~", sess)
	if !res.Err {
		t.Error("cd /root without root access should be denied")
	}

	sess.SetProgress(ProgressKeyRootAccess, true)
	res, _ = Execute("cd /root", "~", sess)
	if res.Err {
		t.Errorf("cd /root with root access failed: %q", res.Output)
	}
	if res.NewDir != "/root" {
		t.Errorf("expected new dir /root, got %q", res.NewDir)
	}
}

func TestCdNavigation(t *testing.T) {
	cases := []struct {
		dir, arg, want string
	}{
		{"~", "Documents", "/Documents"},
		{"/Documents", "corporate", "/Documents/corporate"},
		{"/Documents/corporate", "..", "/Documents"},
		{"/Documents", "..", "~"},
		{"/tmp", "~", "~"},
		{"~", "/Documents/keys", "/Documents/keys"},
	}
	for _, c := range cases {
		res, _ := Execute("cd "+c.arg, c.dir, newScenario(t))
		if res.NewDir != c.want {
			t.Errorf("cd %q from %q = %q, want %q", c.arg, c.dir, res.NewDir, c.want)
		}
	}
}

func TestSudoExploitGrantsRoot(t *testing.T) {
	sess := newScenario(t)
	advanceTo(t, sess, 14)

	_, trs := Execute("sudo -l", "~", sess)
	if len(trs) != 1 || trs[0].Objective.ID != 14 {
		t.Fatalf("expected objective 14 transition, got %v", trs)
	}

	_, trs = Execute("sudo /tmp/exploit.sh", "~", sess)
	if len(trs) != 1 || trs[0].Objective.ID != 15 {
		t.Fatalf("expected objective 15 transition, got %v", trs)
	}
	if !sess.ProgressFlag(ProgressKeyRootAccess) {
		t.Error("exploit should set the root access flag")
	}
}

func TestWhoamiReflectsRootAccess(t *testing.T) {
	sess := newScenario(t)

	res, _ := Execute("whoami", "~", sess)
	if res.Output != "alice" {
		t.Errorf("expected username, got %q", res.Output)
	}

	sess.SetProgress(ProgressKeyRootAccess, true)
	res, _ = Execute("whoami", "~", sess)
	if res.Output != "root" {
		t.Errorf("expected root, got %q", res.Output)
	}
}

func TestCatMissionCompleteFinishesChain(t *testing.T) {
	sess := newScenario(t)
	advanceTo(t, sess, 19)

	res, trs := Execute("cat mission_complete.txt", "/root", sess)
	if len(trs) != 2 {
		t.Fatalf("expected transitions for 19 and 20, got %v", trs)
	}
	if !trs[1].MissionComplete {
		t.Error("final transition should complete the mission")
	}
	if !sess.IsCompleted || sess.SuccessCode == "" {
		t.Error("session should be completed with a code")
	}
	if !strings.Contains(res.Output, sess.SuccessCode) {
		t.Errorf("output should echo the code %q, got %q", sess.SuccessCode, res.Output)
	}
}

func TestCatResolvesFiles(t *testing.T) {
	sess := newScenario(t)

	res, _ := Execute("cat employees.txt", "/Documents/corporate", sess)
	if res.Err || !strings.Contains(res.Output, "EMPLOYEE LIST") {
		t.Errorf("cat employees.txt failed: %+v", res)
	}

	res, _ = Execute("cat nothere.txt", "~", sess)
	if !res.Err {
		t.Error("missing file should be an error")
	}
}

func TestLsListsCurrentFolder(t *testing.T) {
	res, trs := Execute("ls", "/Documents", newScenario(t))
	if !strings.Contains(res.Output, "corporate/") {
		t.Errorf("expected folder listing, got %q", res.Output)
	}
	if len(trs) != 0 {
		t.Errorf("ls before the remote-listing step must not advance, got %v", trs)
	}
}

func TestLsCompletesRemoteListing(t *testing.T) {
	sess := newScenario(t)
	advanceTo(t, sess, 12)

	// Plain ls counts; the -la variant is a hint, not a requirement.
	_, trs := Execute("ls", "~", sess)
	if len(trs) != 1 || trs[0].Objective.ID != 12 {
		t.Errorf("expected objective 12 transition, got %v", trs)
	}
}

func TestLsAllRevealsHiddenFiles(t *testing.T) {
	sess := newScenario(t)
	advanceTo(t, sess, 12)

	res, trs := Execute("ls -la", "~", sess)
	if !strings.Contains(res.Output, "secret.txt") {
		t.Errorf("ls -la should reveal secret.txt, got %q", res.Output)
	}
	if len(trs) != 1 || trs[0].Objective.ID != 12 {
		t.Errorf("expected objective 12 transition, got %v", trs)
	}
}

func TestClear(t *testing.T) {
	res, _ := Execute("clear", "~", newScenario(t))
	if !res.Clear {
		t.Error("clear should set the clear flag")
	}
}
