package config

const dataFolderVar = "TRAVEL_DATA_FOLDER"

type StorageConfig interface {
	GetDataFolder() string
}

type Storage struct{}

var _ StorageConfig = Storage{}

// GetDataFolder returns the folder used for durable client state
// (persisted credentials).
func (Storage) GetDataFolder() string {
	return GetEnv(dataFolderVar, "./data")
}
