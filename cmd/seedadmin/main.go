// Command seedadmin creates the first ADMIN usuário so a fresh install
// can be logged into. It connects with the same configuration as the
// server, prompts for the password without echo and refuses to run when
// the login already exists.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/wbsantos/abertura-contas/infra/initializer"
	"github.com/wbsantos/abertura-contas/pkg/config"
	"github.com/wbsantos/abertura-contas/pkg/domain"
	usuariosvc "github.com/wbsantos/abertura-contas/pkg/service/usuario"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		color.Red("erro: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	svc := usuariosvc.New(deps.Uow, deps.Logger)

	in := usuariosvc.RegistroInput{Perfil: domain.PerfilAdmin}
	in.Nome = prompt("Nome completo")
	in.Matricula = prompt("Matrícula")
	in.Email = prompt("E-mail")
	in.Instituicao = prompt("Instituição")
	in.Login = prompt("Login")

	senha, err := promptSenha("Senha")
	if err != nil {
		return err
	}
	confirma, err := promptSenha("Confirmar senha")
	if err != nil {
		return err
	}
	if senha != confirma {
		return errors.New("as senhas não conferem")
	}
	in.Senha = senha

	if err := svc.Registrar(context.Background(), in); err != nil {
		if errors.Is(err, domain.ErrDuplicado) {
			return fmt.Errorf("já existe um usuário com este login, e-mail ou matrícula")
		}
		return err
	}
	color.Green("Administrador %q criado com sucesso.", in.Login)
	return nil
}

var stdin = bufio.NewScanner(os.Stdin)

func prompt(rotulo string) string {
	fmt.Printf("%s: ", rotulo)
	if !stdin.Scan() {
		return ""
	}
	return strings.TrimSpace(stdin.Text())
}

func promptSenha(rotulo string) (string, error) {
	fmt.Printf("%s: ", rotulo)
	senha, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(senha), nil
}
