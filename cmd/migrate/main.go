package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"sweetshop/internal/pkg/database"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Usando apenas o ambiente do sistema: %v", err)
	}

	var migrationsDir, dsn string
	flag.StringVar(&migrationsDir, "dir", "./sql", "diretório com os arquivos de migração")
	flag.StringVar(&dsn, "dsn", os.Getenv("DATABASE_URL"), "string de conexão PostgreSQL (padrão: $DATABASE_URL)")
	flag.Parse()

	if dsn == "" {
		log.Fatal("goose: DATABASE_URL não definida e -dsn não informado")
	}

	// Só o banco é necessário aqui; o restante da configuração do serviço não é carregado.
	db, err := database.NewPostgresDB(dsn)
	if err != nil {
		log.Fatalf("goose: falha ao conectar ao DB: %v\n", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Fatalf("goose: falha ao fechar o DB: %v\n", err)
		}
	}()

	if err := goose.SetDialect(database.DriverName); err != nil {
		log.Fatalf("goose: dialeto inválido: %v", err)
	}

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"} // 'up' quando nenhum comando é informado
	}

	command := arguments[0]
	var args []string
	if len(arguments) > 1 {
		args = arguments[1:]
	}

	if err := goose.Run(command, db, migrationsDir, args...); err != nil {
		log.Fatalf("goose %v: %v", command, err)
	}

	fmt.Printf("goose %s concluído\n", command)
}
