package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/term"
	"gorm.io/gorm"

	"disiplinku_backend/internals/configs"
	"disiplinku_backend/internals/constants"
	database "disiplinku_backend/internals/databases"
	authRepo "disiplinku_backend/internals/features/users/auth/repository"
	"disiplinku_backend/internals/features/users/auth/scheduler"
	authService "disiplinku_backend/internals/features/users/auth/service"
	userModel "disiplinku_backend/internals/features/users/users/model"
	userRepo "disiplinku_backend/internals/features/users/users/repository"
	"disiplinku_backend/internals/seeds"
)

const minPasswordLen = 6

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db  *gorm.DB
	cfg *configs.Config
	out io.Writer
}

func newCommandLine(db *gorm.DB, cfg *configs.Config, out io.Writer) *commandLine {
	return &commandLine{db: db, cfg: cfg, out: out}
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  adduser -email EMAIL -name NAME [-admin]  - buat akun login password (password diminta)")
	fmt.Fprintln(cli.out, "  setpassword -email EMAIL                  - ganti password akun")
	fmt.Fprintln(cli.out, "  migrate                                   - jalankan migrasi skema")
	fmt.Fprintln(cli.out, "  seed [-demo]                              - isi jenis pelanggaran & tindakan (+ data demo)")
	fmt.Fprintln(cli.out, "  purge-tokens                              - hapus token blacklist yang kedaluwarsa")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ContinueOnError)
	addUserEmail := addUserCmd.String("email", "", "Email akun. Password diminta setelahnya.")
	addUserName := addUserCmd.String("name", "", "Nama tampilan.")
	addUserAdmin := addUserCmd.Bool("admin", false, "Beri role admin.")

	setPasswordCmd := flag.NewFlagSet("setpassword", flag.ContinueOnError)
	setPasswordEmail := setPasswordCmd.String("email", "", "Email akun. Password baru diminta setelahnya.")

	seedCmd := flag.NewFlagSet("seed", flag.ContinueOnError)
	seedDemo := seedCmd.Bool("demo", false, "Tambahkan data demo (tahun ajaran, kelas, siswa, pelanggaran).")

	for _, fs := range []*flag.FlagSet{addUserCmd, setPasswordCmd, seedCmd} {
		fs.SetOutput(cli.out)
	}

	switch args[1] {
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if strings.TrimSpace(*addUserEmail) == "" {
			addUserCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		role := constants.RoleUser
		if *addUserAdmin {
			role = constants.RoleAdmin
		}
		return cli.addUser(*addUserEmail, *addUserName, pwd, role)

	case "setpassword":
		if err := setPasswordCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if strings.TrimSpace(*setPasswordEmail) == "" {
			setPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		return cli.setPassword(*setPasswordEmail, pwd)

	case "migrate":
		if err := database.Migrate(cli.db); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "✅ Migrasi selesai")
		return nil

	case "seed":
		if err := seedCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return seeds.RunAllSeeds(cli.db, *seedDemo)

	case "purge-tokens":
		repo := authRepo.NewTokenBlacklistRepository(cli.db, cli.cfg.JWTSecret)
		n := scheduler.RunBlacklistCleanup(context.Background(), repo, time.Now())
		fmt.Fprintf(cli.out, "✅ %d token dihapus\n", n)
		return nil

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) promptPassword() (string, error) {
	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	if len(pwd) < minPasswordLen {
		return "", fmt.Errorf("password minimal %d karakter", minPasswordLen)
	}
	return string(pwd), nil
}

func (cli *commandLine) addUser(email, name, password, role string) error {
	hash, err := authService.HashPassword(password)
	if err != nil {
		return err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	method := authService.LoginMethodPassword
	u := &userModel.UserModel{
		UserID:           uuid.NewString(),
		UserEmail:        &email,
		UserLoginMethod:  &method,
		UserRole:         role,
		UserPasswordHash: &hash,
	}
	if n := strings.TrimSpace(name); n != "" {
		u.UserName = &n
	}
	repo := userRepo.NewUserRepository(cli.db, cli.cfg.OwnerOpenID)
	if err := repo.Create(context.Background(), u); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "✅ User %s dibuat (id=%s, role=%s)\n", email, u.UserID, u.UserRole)
	return nil
}

func (cli *commandLine) setPassword(email, password string) error {
	repo := userRepo.NewUserRepository(cli.db, cli.cfg.OwnerOpenID)
	ctx := context.Background()
	u := repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if u == nil {
		return fmt.Errorf("user %s tidak ditemukan", email)
	}
	hash, err := authService.HashPassword(password)
	if err != nil {
		return err
	}
	if _, err := repo.SetPassword(ctx, u.UserID, hash); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "✅ Password %s diganti\n", email)
	return nil
}
